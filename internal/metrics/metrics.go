package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Linking Metrics
var (
	TokenExchanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenExchanges,
			Help: HelpTextTokenExchanges,
		},
		[]string{LabelResult},
	)

	LinkWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLinkWrites,
			Help: HelpTextLinkWrites,
		},
		[]string{LabelOp},
	)

	CallbackResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCallbackResults,
			Help: HelpTextCallbackResults,
		},
		[]string{LabelOutcome},
	)

	AuthURLsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthURLsIssued,
			Help: HelpTextAuthURLsIssued,
		},
	)
)
