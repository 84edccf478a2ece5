package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/database"
	"github.com/osse101/spotifylink/internal/domain"
)

const testUserID = "123456789012345678"

type fakeReader struct {
	rec *domain.LinkRecord
	err error
	got string
}

func (f *fakeReader) GetLink(_ context.Context, userID string) (*domain.LinkRecord, error) {
	f.got = userID
	return f.rec, f.err
}

func newTestRunner(t *testing.T, reader LinkReader) (*Runner, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		Spotify: config.SpotifyConfig{
			ClientID:    "client-abc",
			RedirectURI: "https://bot.example.com/api/callback",
		},
		Database: config.DatabaseConfig{StateTable: "bot_state", MaxConns: 2},
	}

	var out bytes.Buffer
	r := NewRunner(cfg, &out)
	r.openPool = func(context.Context) (*pgxpool.Pool, error) {
		// Lazy pool, never dialed by these tests
		return database.NewPool("postgres://postgres@127.0.0.1:1/none?sslmode=disable", 1, time.Minute, time.Minute)
	}
	r.newStore = func(*pgxpool.Pool) LinkReader { return reader }
	return r, &out
}

func TestAuthURLCommand(t *testing.T) {
	r, out := newTestRunner(t, nil)

	err := newApp(r).Run(context.Background(), []string{"linkctl", "auth-url", "--user-id", " " + testUserID + " "})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "https://accounts.spotify.com/authorize?")
	assert.Contains(t, out.String(), "state="+testUserID)
	assert.Contains(t, out.String(), "client_id=client-abc")
}

func TestAuthURLCommand_InvalidUserID(t *testing.T) {
	r, out := newTestRunner(t, nil)

	err := newApp(r).Run(context.Background(), []string{"linkctl", "auth-url", "-u", "abc"})
	require.ErrorIs(t, err, domain.ErrInvalidUserID)
	assert.Empty(t, out.String())
}

func TestAuthURLCommand_RequiresUserID(t *testing.T) {
	r, _ := newTestRunner(t, nil)

	err := newApp(r).Run(context.Background(), []string{"linkctl", "auth-url"})
	assert.Error(t, err)
}

func TestShowCommand_MasksTokens(t *testing.T) {
	reader := &fakeReader{rec: &domain.LinkRecord{
		UserID:       testUserID,
		AccessToken:  "BQDaccess-token-value-XYZ1",
		RefreshToken: "AQBrefresh-token-value-9876",
		ExpiresAt:    time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).UnixMilli(),
	}}
	r, out := newTestRunner(t, reader)

	err := newApp(r).Run(context.Background(), []string{"linkctl", "show", "--user-id", testUserID})
	require.NoError(t, err)

	assert.Equal(t, testUserID, reader.got)
	assert.NotContains(t, out.String(), "access-token-value")
	assert.NotContains(t, out.String(), "refresh-token-value")
	assert.Contains(t, out.String(), "BQDa")
	assert.Contains(t, out.String(), "XYZ1")
	assert.Contains(t, out.String(), "2030-01-02T03:04:05Z (valid)")
}

func TestShowCommand_NotFound(t *testing.T) {
	r, out := newTestRunner(t, &fakeReader{err: domain.ErrLinkNotFound})

	err := newApp(r).Run(context.Background(), []string{"linkctl", "show", "-u", testUserID})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no Spotify link stored for "+testUserID)
}

func TestShowCommand_StoreError(t *testing.T) {
	r, _ := newTestRunner(t, &fakeReader{err: domain.ErrPersistenceFailed})

	err := newApp(r).Run(context.Background(), []string{"linkctl", "show", "-u", testUserID})
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty", "", "(none)"},
		{"short", "abcd", "****"},
		{"boundary", "abcdefgh", "********"},
		{"long", "abcdefghijkl", "abcd****ijkl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskToken(tt.token))
		})
	}
}
