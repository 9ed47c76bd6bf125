package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(chatTurns, historyReads)
}

var (
	chatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Completed conversational turns per focus/level.",
		},
		[]string{"focus", "level"},
	)

	historyReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_reads_total",
			Help: "History read requests per scope/outcome.",
		},
		[]string{"scope", "outcome"},
	)
)

func TurnCompleted(focus, level string) {
	chatTurns.WithLabelValues(norm(focus), norm(level)).Inc()
}

func HistoryRead(scope, outcome string) {
	historyReads.WithLabelValues(norm(scope), norm(outcome)).Inc()
}
