package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Runs      *prometheus.CounterVec
	Artifacts *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "iris",
				Name:      "runs",
			}, []string{"model", "outcome"}),
		Artifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "iris",
				Name:      "artifacts",
			}, []string{"model"}),
	}
}
