package diagnosis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts diagnoses by outcome and source. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the diagnosis collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "krushit",
			Name:      "diagnoses_total",
			Help:      "Total number of diagnoses by classifier outcome and advisory source.",
		}, []string{"outcome", "source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "krushit",
			Name:      "diagnosis_duration_seconds",
			Help:      "Time to produce a diagnosis report, classifier call included.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
	reg.MustRegister(m.total, m.duration)
	return m
}

func (m *Metrics) observe(r *Report, d time.Duration) {
	if m == nil {
		return
	}
	source := r.Source
	if source == "" {
		source = "none"
	}
	m.total.WithLabelValues(r.Outcome.String(), source).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) observeError(d time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues("defect", "none").Inc()
	m.duration.Observe(d.Seconds())
}
