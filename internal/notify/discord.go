// Package notify tells Discord users that their Spotify account was linked.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/spotifylink/internal/logger"
)

const (
	embedColorSpotify = 0x1DB954
	embedTitle        = "Spotify linked"
	embedDescription  = "Your Spotify account is now linked. Head back to Discord to use the Spotify commands."
	embedFooter       = "Spotify Link"

	logMsgNotified = "Sent link confirmation DM"
)

// Session is the subset of *discordgo.Session used for direct messages.
type Session interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier sends a DM embed to the linked user.
type DiscordNotifier struct {
	session Session
	now     func() time.Time
}

// NewDiscordNotifier creates a notifier authenticated with a bot token.
// No gateway connection is opened; only REST calls are made.
func NewDiscordNotifier(token string) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewDiscordNotifierWithSession(s), nil
}

// NewDiscordNotifierWithSession wraps an existing session.
func NewDiscordNotifierWithSession(s Session) *DiscordNotifier {
	return &DiscordNotifier{session: s, now: time.Now}
}

// NotifyLinked opens a DM channel with userID and posts the confirmation.
func (n *DiscordNotifier) NotifyLinked(ctx context.Context, userID string) error {
	ch, err := n.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: embedDescription,
		Color:       embedColorSpotify,
		Timestamp:   n.now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: embedFooter,
		},
	}

	if _, err := n.session.ChannelMessageSendEmbed(ch.ID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	logger.FromContext(ctx).Info(logMsgNotified, "user_id", userID)
	return nil
}
