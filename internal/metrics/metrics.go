package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Runs, Observer.prometheus.Artifacts)
}

type Metrics struct {
	prometheus Prometheus
}

// IncrementRun counts one training run with its tracking outcome.
func (m *Metrics) IncrementRun(model, outcome string) {
	m.prometheus.Runs.WithLabelValues(model, outcome).Inc()
}

// IncrementArtifact counts one quantized artifact write.
func (m *Metrics) IncrementArtifact(model string) {
	m.prometheus.Artifacts.WithLabelValues(model).Inc()
}
