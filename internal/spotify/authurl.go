package spotify

import (
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	oauthspotify "golang.org/x/oauth2/spotify"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/validation"
)

// AuthURLBuilder builds Spotify authorization URLs for Discord users.
type AuthURLBuilder struct {
	cfg config.SpotifyConfig
}

// NewAuthURLBuilder creates a builder for the given client registration.
func NewAuthURLBuilder(cfg config.SpotifyConfig) *AuthURLBuilder {
	return &AuthURLBuilder{cfg: cfg}
}

// Build returns the authorization URL whose state carries userID through the
// OAuth round-trip. It performs no I/O.
func (b *AuthURLBuilder) Build(userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if !validation.IsValidUserID(id) {
		return "", domain.ErrInvalidUserID
	}
	if b.cfg.ClientID == "" || b.cfg.RedirectURI == "" {
		return "", domain.ErrNotConfigured
	}

	return newOAuthConfig(b.cfg).AuthCodeURL(id), nil
}

// BoundRedirectURI appends the redirect binding token to redirect so that
// Spotify echoes it back on the callback.
func BoundRedirectURI(redirect, botToken string) string {
	if botToken == "" || redirect == "" {
		return redirect
	}
	sep := "?"
	if strings.Contains(redirect, "?") {
		sep = "&"
	}
	return redirect + sep + ParamBot + "=" + url.QueryEscape(botToken)
}

// newOAuthConfig maps the client registration onto an oauth2 config. The
// redirect URL is the bound one for both the authorize and token requests.
func newOAuthConfig(cfg config.SpotifyConfig) *oauth2.Config {
	endpoint := oauthspotify.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInHeader

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  BoundRedirectURI(cfg.RedirectURI, cfg.RedirectBotToken),
		Scopes:       Scopes,
	}
}
