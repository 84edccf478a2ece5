package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/domain"
)

// maxTokenResponseBytes matches the read limit x/oauth2 applies itself.
const maxTokenResponseBytes = 1 << 20

// TokenExchanger trades an authorization code for tokens.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (domain.TokenSet, error)
}

// OAuthExchanger exchanges codes at the Spotify token endpoint using client
// credentials in a Basic authorization header.
type OAuthExchanger struct {
	conf   *oauth2.Config
	client *http.Client
	now    func() time.Time
}

// NewOAuthExchanger creates an exchanger. A nil client uses a copy of
// http.DefaultClient. The client's transport is wrapped so a loosely typed
// expires_in never fails the exchange.
func NewOAuthExchanger(cfg config.SpotifyConfig, client *http.Client) *OAuthExchanger {
	if client == nil {
		client = http.DefaultClient
	}
	wrapped := *client
	base := wrapped.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = expiresInTransport{base: base}

	return &OAuthExchanger{
		conf:   newOAuthConfig(cfg),
		client: &wrapped,
		now:    time.Now,
	}
}

// Exchange performs a single authorization_code grant. Transport errors,
// non-2xx answers and answers without an access token all wrap
// domain.ErrExchangeFailed. Nothing is retried. A missing client id, client
// secret or redirect URI fails with domain.ErrNotConfigured before any
// request.
func (e *OAuthExchanger) Exchange(ctx context.Context, code string) (domain.TokenSet, error) {
	if e.conf.ClientID == "" || e.conf.ClientSecret == "" || e.conf.RedirectURL == "" {
		return domain.TokenSet{}, domain.ErrNotConfigured
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	tok, err := e.conf.Exchange(ctx, code)
	if err != nil {
		return domain.TokenSet{}, fmt.Errorf("%w: %v", domain.ErrExchangeFailed, err)
	}
	if tok.AccessToken == "" {
		return domain.TokenSet{}, fmt.Errorf("%w: response has no access token", domain.ErrExchangeFailed)
	}

	expiry := tok.Expiry
	if now := e.now(); !expiry.After(now) {
		expiry = now.Add(DefaultTokenLifetime)
	}

	return domain.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       expiry,
	}, nil
}

// expiresInTransport rewrites expires_in in successful JSON token responses
// to whole seconds before x/oauth2 decodes them. x/oauth2 only accepts an
// integer there. Values that are not a positive number are removed so the
// default lifetime applies.
type expiresInTransport struct {
	base http.RoundTripper
}

func (t expiresInTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(r)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	body = normalizeExpiresIn(body)
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.Header.Del("Content-Length")
	return resp, nil
}

// normalizeExpiresIn returns body unchanged unless it is a JSON object
// carrying expires_in.
func normalizeExpiresIn(body []byte) []byte {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}
	raw, ok := fields["expires_in"]
	if !ok {
		return body
	}

	if secs, ok := parseLifetime(raw); ok {
		fields["expires_in"] = json.RawMessage(strconv.FormatInt(secs, 10))
	} else {
		delete(fields, "expires_in")
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}

// parseLifetime accepts a JSON number or a numeric string and truncates it
// to seconds, capped at math.MaxInt32 like x/oauth2 does.
func parseLifetime(raw json.RawMessage) (int64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 0, false
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	return int64(f), true
}
