package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/domain"
)

type tokenRequest struct {
	user, pass string
	form       map[string]string
}

func newTokenServer(t *testing.T, status int, body map[string]any, seen *tokenRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		if seen != nil {
			seen.user, seen.pass, _ = r.BasicAuth()
			seen.form = map[string]string{}
			for k := range r.PostForm {
				seen.form[k] = r.PostForm.Get(k)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestExchanger(tokenURL string, now time.Time) *OAuthExchanger {
	cfg := testSpotifyConfig()
	cfg.TokenURL = tokenURL
	cfg.RedirectBotToken = "b0t"
	ex := NewOAuthExchanger(cfg, nil)
	ex.now = func() time.Time { return now }
	return ex
}

func TestOAuthExchanger_Success(t *testing.T) {
	var seen tokenRequest
	srv := newTokenServer(t, http.StatusOK, map[string]any{
		"access_token":  "A1",
		"refresh_token": "R1",
		"token_type":    "Bearer",
		"expires_in":    3600,
	}, &seen)

	now := time.Now()
	tokens, err := newTestExchanger(srv.URL, now).Exchange(context.Background(), "C")
	require.NoError(t, err)

	assert.Equal(t, "A1", tokens.AccessToken)
	assert.Equal(t, "R1", tokens.RefreshToken)
	assert.WithinDuration(t, now.Add(time.Hour), tokens.Expiry, 5*time.Second)

	assert.Equal(t, "abc", seen.user)
	assert.Equal(t, "shh", seen.pass)
	assert.Equal(t, "authorization_code", seen.form["grant_type"])
	assert.Equal(t, "C", seen.form["code"])
	assert.Equal(t, "https://x.example/api/callback?bot=b0t", seen.form["redirect_uri"])
	assert.NotContains(t, seen.form, "client_secret")
}

func TestOAuthExchanger_DefaultExpiry(t *testing.T) {
	srv := newTokenServer(t, http.StatusOK, map[string]any{
		"access_token": "A2",
		"token_type":   "Bearer",
	}, nil)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tokens, err := newTestExchanger(srv.URL, now).Exchange(context.Background(), "C")
	require.NoError(t, err)

	assert.Equal(t, "", tokens.RefreshToken)
	assert.Equal(t, now.Add(DefaultTokenLifetime), tokens.Expiry)
}

func TestOAuthExchanger_LenientExpiresIn(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn any
		want      time.Duration
	}{
		{"word", "soon", DefaultTokenLifetime},
		{"fractional", 3600.5, 3600 * time.Second},
		{"numeric string", "1800", 1800 * time.Second},
		{"padded numeric string", " 120 ", 120 * time.Second},
		{"zero", 0, DefaultTokenLifetime},
		{"negative", -5, DefaultTokenLifetime},
		{"below one second", 0.4, DefaultTokenLifetime},
		{"null", nil, DefaultTokenLifetime},
		{"object", map[string]any{"s": 10}, DefaultTokenLifetime},
		{"boolean", true, DefaultTokenLifetime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTokenServer(t, http.StatusOK, map[string]any{
				"access_token":  "A1",
				"refresh_token": "R1",
				"expires_in":    tt.expiresIn,
			}, nil)

			now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			tokens, err := newTestExchanger(srv.URL, now).Exchange(context.Background(), "C")
			require.NoError(t, err)

			assert.Equal(t, "A1", tokens.AccessToken)
			assert.Equal(t, "R1", tokens.RefreshToken)
			assert.WithinDuration(t, now.Add(tt.want), tokens.Expiry, 5*time.Second)
		})
	}
}

func TestNormalizeExpiresIn_LeavesOtherBodiesAlone(t *testing.T) {
	for _, body := range []string{
		`access_token=A1&expires_in=soon`,
		`{"access_token":"A1"}`,
		`[1,2]`,
	} {
		assert.Equal(t, body, string(normalizeExpiresIn([]byte(body))))
	}
}

func TestOAuthExchanger_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]any
	}{
		{"non-2xx", http.StatusBadRequest, map[string]any{"error": "invalid_grant"}},
		{"server error", http.StatusInternalServerError, map[string]any{}},
		{"missing access token", http.StatusOK, map[string]any{"token_type": "Bearer", "expires_in": 3600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTokenServer(t, tt.status, tt.body, nil)

			_, err := newTestExchanger(srv.URL, time.Now()).Exchange(context.Background(), "C")
			assert.ErrorIs(t, err, domain.ErrExchangeFailed)
		})
	}
}

func TestOAuthExchanger_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestExchanger(url, time.Now()).Exchange(context.Background(), "C")
	assert.ErrorIs(t, err, domain.ErrExchangeFailed)
}

func TestOAuthExchanger_UsesProvidedClient(t *testing.T) {
	srv := newTokenServer(t, http.StatusOK, map[string]any{"access_token": "A3", "expires_in": 60}, nil)

	var called bool
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return http.DefaultTransport.RoundTrip(r)
	})}

	cfg := testSpotifyConfig()
	cfg.TokenURL = srv.URL
	_, err := NewOAuthExchanger(cfg, client).Exchange(context.Background(), "C")
	require.NoError(t, err)
	assert.True(t, called)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestOAuthExchanger_NotConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls.Add(1) }))
	defer srv.Close()

	tests := []struct {
		name  string
		clear func(*config.SpotifyConfig)
	}{
		{"client id", func(c *config.SpotifyConfig) { c.ClientID = "" }},
		{"client secret", func(c *config.SpotifyConfig) { c.ClientSecret = "" }},
		{"redirect uri", func(c *config.SpotifyConfig) { c.RedirectURI = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSpotifyConfig()
			cfg.TokenURL = srv.URL
			tt.clear(&cfg)

			_, err := NewOAuthExchanger(cfg, nil).Exchange(context.Background(), "C")
			assert.ErrorIs(t, err, domain.ErrNotConfigured)
		})
	}
	assert.Zero(t, calls.Load())
}
