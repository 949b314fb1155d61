package services

import "github.com/prometheus/client_golang/prometheus"

var (
	publicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "publications_submitted_total",
			Help: "Total number of publications submitted.",
		},
	)
	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publication_status_transitions_total",
			Help: "Total number of publication status transitions, by resulting status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(publicationsSubmitted, statusTransitions)
}
