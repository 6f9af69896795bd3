package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Business metrics
	VehiclesActiveGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vehicles_active_total",
			Help: "Current number of vehicles inside the lot",
		},
	)

	VehiclesEnteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicles_entered_total",
			Help: "Total number of vehicles admitted to the ledger",
		},
		[]string{"vehicle_type"},
	)

	VehiclesExitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicles_exited_total",
			Help: "Total number of vehicle exits recorded",
		},
		[]string{"vehicle_type"},
	)

	FeesCollectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fees_collected_total",
			Help: "Sum of parking fees computed on exit",
		},
	)

	// Reconciliation metrics
	ReconTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recon_ticks_total",
			Help: "Total number of reconciliation ticks by kind and status",
		},
		[]string{"kind", "status"},
	)

	ReconTickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recon_tick_duration_seconds",
			Help:    "Reconciliation tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	ReconDriftTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recon_drift_detected_total",
			Help: "Total number of restore ticks that detected drift and reloaded state",
		},
	)

	// Remote store metrics
	RemoteWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_writes_total",
			Help: "Total number of writes against the authoritative store",
		},
		[]string{"operation", "status"},
	)

	BackupsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backups_published_total",
			Help: "Total number of backup snapshots published to RabbitMQ",
		},
		[]string{"status"},
	)

	WebSocketConnectionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordRemoteWrite records a write attempt against the authoritative store
func RecordRemoteWrite(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RemoteWritesTotal.WithLabelValues(operation, status).Inc()
}

// RecordBackupPublish records a backup publish attempt
func RecordBackupPublish(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	BackupsPublishedTotal.WithLabelValues(status).Inc()
}

// RecordReconTick records a reconciliation tick outcome
func RecordReconTick(kind, status string, duration time.Duration) {
	ReconTicksTotal.WithLabelValues(kind, status).Inc()
	ReconTickDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
