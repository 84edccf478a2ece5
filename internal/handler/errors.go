package handler

// Client-facing messages. They never carry internal error details.
// Handlers and tests both reference these constants.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInternalError    = "Internal server error."

	// auth-url messages
	ErrMsgInvalidUserIDParam = "Missing or invalid user_id (Discord user ID)."
	ErrMsgSpotifyNotConfig   = "Spotify not configured (SPOTIFY_CLIENT_ID, SPOTIFY_REDIRECT_URI)."
)

// Callback page messages
const (
	PageMsgForbiddenRedirect = "Invalid redirect. Use the link from Discord to link your account."
	PageMsgDeniedFormat      = "Authorization denied or failed (%s). Try again from Discord."
	PageMsgMissingSession    = "Missing code or state. Use the link from Discord first."
	PageMsgInvalidSession    = "Invalid link session. Get a new link from Discord."
	PageMsgExchangeFailed    = "Could not connect to Spotify. Try again from Discord."
	PageMsgSaveFailed        = "Spotify login worked but we could not save it. Try again from Discord."
	PageMsgNotConfigured     = "Spotify linking is not configured on this server."
	PageMsgGeneric           = "Something went wrong. Try again from Discord."
)

// Log messages
const (
	LogMsgUnhandledCallbackError = "[callback] unhandled error"
	LogMsgUnhandledAuthURLError  = "[auth-url] unhandled error"
	LogMsgAuthURLIssued          = "Issued Spotify authorization URL"
	LogMsgWebBaseMissing         = "WEB_BASE_URL is not configured"
	LogMsgEncodeFailed           = "Failed to encode JSON response"
	LogMsgWriteFailed            = "Failed to write response buffer"
	LogMsgRenderFailed           = "Failed to render page"
	LogMsgReadinessFailed        = "Readiness check failed"
)
