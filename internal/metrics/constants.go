package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Linking metric names
const (
	MetricNameTokenExchanges  = "spotify_token_exchanges_total"
	MetricNameLinkWrites      = "spotify_link_writes_total"
	MetricNameCallbackResults = "spotify_callback_results_total"
	MetricNameAuthURLsIssued  = "spotify_auth_urls_issued_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Linking metric help text
const (
	HelpTextTokenExchanges  = "Authorization code exchanges by result"
	HelpTextLinkWrites      = "Link records written by operation"
	HelpTextCallbackResults = "OAuth callbacks by outcome"
	HelpTextAuthURLsIssued  = "Authorization URLs issued"
)

// ============================================================================
// Labels and values
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelResult  = "result"
	LabelOp      = "op"
	LabelOutcome = "outcome"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	OpCreated = "created"
	OpUpdated = "updated"
)

// Callback outcomes
const (
	OutcomeLinked         = "linked"
	OutcomeForbidden      = "forbidden"
	OutcomeDenied         = "denied"
	OutcomeMissingFields  = "missing_fields"
	OutcomeInvalidState   = "invalid_state"
	OutcomeExchangeFailed = "exchange_failed"
	OutcomeSaveFailed     = "save_failed"
	OutcomeNotConfigured  = "not_configured"
	OutcomeInternalError  = "internal_error"
)

// Buckets
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
