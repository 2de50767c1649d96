package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	BooksAdded         prometheus.Counter
	TradesResolved     *prometheus.CounterVec
	ReadsMarked        prometheus.Counter
}

// InitMetrics registers and returns the collectors.
func InitMetrics() *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path"},
		),
		BooksAdded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "books_added_total",
				Help: "Total number of books added to the catalog",
			},
		),
		TradesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trades_resolved_total",
				Help: "Total number of resolved trade requests by decision",
			},
			[]string{"decision"},
		),
		ReadsMarked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reads_marked_total",
				Help: "Total number of new reading statuses recorded",
			},
		),
	}

	prometheus.MustRegister(m.SuccessfulRequests)
	prometheus.MustRegister(m.BadRequests)
	prometheus.MustRegister(m.BooksAdded)
	prometheus.MustRegister(m.TradesResolved)
	prometheus.MustRegister(m.ReadsMarked)

	return m
}
