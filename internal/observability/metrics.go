package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeOptimized  = "optimized"
	OutcomeNoFeasible = "no_feasible"
)

var (
	Computations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mix_computations_total",
		Help: "Mix design computations by operation and outcome.",
	}, []string{"op", "outcome"})

	OptimizerOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mix_optimizer_outcomes_total",
		Help: "Grid-search results, optimized or no feasible mix.",
	}, []string{"outcome"})

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(Computations, OptimizerOutcomes)
}

func ObserveComputation(op, outcome string) {
	Computations.WithLabelValues(op, outcome).Inc()
}

func ObserveOptimizer(optimized bool) {
	if optimized {
		OptimizerOutcomes.WithLabelValues(OutcomeOptimized).Inc()
		return
	}
	OptimizerOutcomes.WithLabelValues(OutcomeNoFeasible).Inc()
}

func PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
