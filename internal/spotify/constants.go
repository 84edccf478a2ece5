package spotify

import (
	"strings"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

// Scopes requested for every linked account.
var Scopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopeUserReadRecentlyPlayed,
	spotifyauth.ScopeUserTopRead,
	spotifyauth.ScopeUserModifyPlaybackState,
}

// ScopeString is the space-delimited scope parameter sent to Spotify.
var ScopeString = strings.Join(Scopes, " ")

// DefaultTokenLifetime applies when the token endpoint omits expires_in or
// sends a value that is not a positive number of seconds.
const DefaultTokenLifetime = 3600 * time.Second

// NotifyTimeout bounds one detached link notification.
const NotifyTimeout = 15 * time.Second

// Query parameter names
const (
	ParamBot   = "bot"
	ParamCode  = "code"
	ParamState = "state"
	ParamError = "error"
)

// Log messages
const (
	LogMsgBindingMismatch  = "Callback rejected: redirect binding token mismatch"
	LogMsgUpstreamDenied   = "Callback reported authorization error"
	LogMsgMissingFields    = "Callback missing code or state"
	LogMsgInvalidState     = "Callback state is not a Discord user id"
	LogMsgExchangeFailed   = "Authorization code exchange failed"
	LogMsgPersistFailed    = "Failed to persist Spotify link"
	LogMsgNotifyFailed     = "Failed to notify user about link"
	LogMsgAccountLinked    = "Spotify account linked"
	LogMsgAccountRelinked  = "Spotify account re-linked"
	LogMsgExchangeComplete = "Authorization code exchanged"
)
