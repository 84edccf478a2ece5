package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

const userID = "123456789012345678"

func TestNotifyLinked_SendsEmbed(t *testing.T) {
	s := new(MockSession)
	n := NewDiscordNotifierWithSession(s)
	n.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	s.On("UserChannelCreate", userID).Return(&discordgo.Channel{ID: "dm-1"}, nil).Once()
	s.On("ChannelMessageSendEmbed", "dm-1", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Title == embedTitle && e.Color == embedColorSpotify && e.Timestamp == "2026-03-01T12:00:00Z"
	})).Return(&discordgo.Message{ID: "m-1"}, nil).Once()

	require.NoError(t, n.NotifyLinked(context.Background(), userID))
	s.AssertExpectations(t)
}

func TestNotifyLinked_ChannelError(t *testing.T) {
	s := new(MockSession)
	s.On("UserChannelCreate", userID).Return(nil, errors.New("cannot DM")).Once()

	err := NewDiscordNotifierWithSession(s).NotifyLinked(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot DM")
	s.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func TestNotifyLinked_SendError(t *testing.T) {
	s := new(MockSession)
	s.On("UserChannelCreate", userID).Return(&discordgo.Channel{ID: "dm-1"}, nil)
	s.On("ChannelMessageSendEmbed", "dm-1", mock.Anything).Return(nil, errors.New("50007"))

	err := NewDiscordNotifierWithSession(s).NotifyLinked(context.Background(), userID)
	assert.ErrorContains(t, err, "failed to send DM")
}

func TestNewDiscordNotifier(t *testing.T) {
	n, err := NewDiscordNotifier("test-token")
	require.NoError(t, err)
	assert.NotNil(t, n.session)
}
