package diag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts the orchestrator's observable work. A nil *Metrics is a
// valid no-op receiver so tests can skip registration.
type Metrics struct {
	snapshotsApplied prometheus.Counter
	inputsSent       prometheus.Counter
	sessionsStarted  *prometheus.CounterVec
	sessionsCleaned  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		snapshotsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pong_snapshots_applied_total",
			Help: "Game snapshots received and applied to the renderer.",
		}),
		inputsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pong_inputs_sent_total",
			Help: "key_update messages forwarded upstream.",
		}),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pong_sessions_started_total",
			Help: "Sessions started, by kind.",
		}, []string{"kind"}),
		sessionsCleaned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pong_sessions_cleaned_total",
			Help: "Sessions torn down, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.snapshotsApplied, m.inputsSent, m.sessionsStarted, m.sessionsCleaned)
	return m
}

func (m *Metrics) SnapshotApplied() {
	if m == nil {
		return
	}
	m.snapshotsApplied.Inc()
}

func (m *Metrics) InputSent() {
	if m == nil {
		return
	}
	m.inputsSent.Inc()
}

func (m *Metrics) SessionStarted(kind string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(kind).Inc()
}

func (m *Metrics) SessionCleaned(kind string) {
	if m == nil {
		return
	}
	m.sessionsCleaned.WithLabelValues(kind).Inc()
}

// Routes builds the local diagnostics handler: health plus metrics.
func Routes(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}
