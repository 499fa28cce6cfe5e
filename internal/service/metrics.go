package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the submission-pipeline counters.
type Metrics struct {
	submissions *prometheus.CounterVec
	uploads     *prometheus.CounterVec
}

// NewMetrics registers the pipeline counters on the given registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_submissions_total",
				Help: "Total document submissions by outcome and failure stage.",
			},
			[]string{"outcome", "stage"},
		),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_uploads_total",
				Help: "Total per-file uploads by backend, document type, and outcome.",
			},
			[]string{"backend", "document_type", "outcome"},
		),
	}

	if err := reg.Register(m.submissions); err != nil {
		return nil, err
	}
	if err := reg.Register(m.uploads); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) submission(outcome string, stage Stage) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, string(stage)).Inc()
}

func (m *Metrics) upload(backend string, docType string, outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(backend, docType, outcome).Inc()
}
