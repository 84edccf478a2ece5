package server

import "time"

// Server limits
const (
	MaxRequestBodyBytes = 1 << 16
	ReadHeaderTimeout   = 5 * time.Second
	ReadTimeout         = 10 * time.Second
	// WriteTimeout covers the token exchange and the state write.
	WriteTimeout = 30 * time.Second
	IdleTimeout  = 60 * time.Second
)

// Routes
const (
	RouteAuthURL  = "/api/auth-url"
	RouteCallback = "/api/callback"
	RouteHealthz  = "/healthz"
	RouteReadyz   = "/readyz"
	RouteVersion  = "/version"
	RouteMetrics  = "/metrics"
	RouteSwagger  = "/swagger/*"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgPanicRecovered   = "Recovered from panic in handler"
)

// HTTP header names
const (
	HeaderAuthorization  = "Authorization"
	HeaderCookie         = "Cookie"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff = "nosniff"
	HeaderValueDeny    = "DENY"
	HeaderValueXSS     = "1; mode=block"
	// no-referrer keeps the authorization code out of third-party Referer headers
	HeaderValueNoReferrer = "no-referrer"
)

// quietPaths are served without request logging
var quietPaths = []string{
	RouteHealthz,
	RouteReadyz,
	RouteMetrics,
}

// sensitiveQueryParams are redacted from logged query strings
var sensitiveQueryParams = []string{"code", "bot"}
