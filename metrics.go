package normalize

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opDecode = "decode"
	opEncode = "encode"

	statusOK    = "ok"
	statusError = "error"

	typeIDLabelName = "type_id"
	opLabelName     = "op"
	statusLabelName = "status"
)

// durationBuckets in microseconds: 1 .. 131072.
var durationBuckets = prometheus.ExponentialBuckets(1, 2, 18)

// Metrics holds the dispatcher's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	Operations      *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
	HandlersCreated *prometheus.CounterVec
}

// NewMetrics creates collectors under namespace. They are not registered.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "normalize",
				Name:      "operations_total",
				Help:      "decode and encode calls by type and status",
			}, []string{opLabelName, typeIDLabelName, statusLabelName}),

		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "normalize",
				Name:      "duration_microseconds",
				Help:      "decode and encode latency in microseconds",
				Buckets:   durationBuckets,
			}, []string{opLabelName, typeIDLabelName}),

		HandlersCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "normalize",
				Name:      "handlers_created_total",
				Help:      "handler instantiations by type",
			}, []string{typeIDLabelName}),
	}
}

// Register registers all collectors with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Operations, m.Duration, m.HandlersCreated} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers all collectors with r and panics on error.
func (m *Metrics) MustRegister(r prometheus.Registerer) {
	r.MustRegister(m.Operations, m.Duration, m.HandlersCreated)
}

func (m *Metrics) observe(op string, id TypeID, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.Operations.WithLabelValues(op, string(id), status).Inc()
	m.Duration.WithLabelValues(op, string(id)).Observe(float64(elapsed.Microseconds()))
}

func (m *Metrics) handlerCreated(id TypeID) {
	if m == nil {
		return
	}
	m.HandlersCreated.WithLabelValues(string(id)).Inc()
}
