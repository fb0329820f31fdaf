package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ProbeOutcome string

var (
	ProbeFound    ProbeOutcome = "found"
	ProbeNotFound ProbeOutcome = "not_found"
	ProbeFailed   ProbeOutcome = "failed"
	ProbeStale    ProbeOutcome = "stale"
)

type explorerPromMetrics struct {
	probeCount       *prometheus.CounterVec
	resolutionCount  *prometheus.CounterVec
	redirectCount    prometheus.Counter
	fetchErrorCount  *prometheus.CounterVec
	fetchLatency     *prometheus.HistogramVec
	ledgerVersion    *prometheus.GaugeVec
	ledgerPollCount  *prometheus.CounterVec
	httpRequestCount *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	panicCount       prometheus.Counter
}

func newExplorerPromMetrics() *explorerPromMetrics {
	return &explorerPromMetrics{
		probeCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_probe_total",
				Help: "Existence probes settled, by entity kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		resolutionCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_resolution_total",
				Help: "Address resolutions completed, by resolved entity kind",
			},
			[]string{"kind"},
		),
		redirectCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "explorer_object_redirect_total",
				Help: "Redirects issued from the account view to the object view",
			},
		),
		fetchErrorCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_fetch_error_total",
				Help: "Failed node API calls, by operation and error type",
			},
			[]string{"operation", "type"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_fetch_duration_seconds",
				Help:    "Latency of node API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ledgerVersion: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "explorer_ledger_version",
				Help: "Latest ledger version observed by the ledger monitor",
			},
			[]string{"network"},
		),
		ledgerPollCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_ledger_poll_total",
				Help: "Ledger polls issued by the ledger monitor, by result",
			},
			[]string{"network", "result"},
		),
		httpRequestCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_http_requests_total",
				Help: "HTTP requests served, by route and status code",
			},
			[]string{"route", "status"},
		),
		httpLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "explorer_panic_total",
				Help: "Recovered panics in background goroutines",
			},
		),
	}
}

var explorerMetrics = newExplorerPromMetrics()

func RecordProbe(kind string, outcome ProbeOutcome) {
	explorerMetrics.probeCount.WithLabelValues(kind, string(outcome)).Inc()
}

func RecordResolution(kind string) {
	explorerMetrics.resolutionCount.WithLabelValues(kind).Inc()
}

func IncreaseRedirectCount() {
	explorerMetrics.redirectCount.Inc()
}

func RecordFetchError(operation, errType string) {
	explorerMetrics.fetchErrorCount.WithLabelValues(operation, errType).Inc()
}

func RecordFetchLatency(operation string, d time.Duration) {
	explorerMetrics.fetchLatency.WithLabelValues(operation).Observe(d.Seconds())
}

func SetLedgerVersion(network string, version uint64) {
	explorerMetrics.ledgerVersion.WithLabelValues(network).Set(float64(version))
}

func RecordLedgerPoll(network string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	explorerMetrics.ledgerPollCount.WithLabelValues(network, result).Inc()
}

func RecordHTTPRequest(route string, status int, d time.Duration) {
	explorerMetrics.httpRequestCount.WithLabelValues(route, strconv.Itoa(status)).Inc()
	explorerMetrics.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

func IncreasePanicCount() {
	explorerMetrics.panicCount.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
