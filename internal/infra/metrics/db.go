package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(dbQueryMs)
}

var dbQueryMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_ms",
		Help:    "Database query latency in milliseconds.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
	[]string{"repo", "op"},
)

func ObserveDBQuery(repo, op string, latencyMs float64) {
	dbQueryMs.WithLabelValues(norm(repo), norm(op)).Observe(latencyMs)
}
