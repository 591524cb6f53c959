// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "Total number of HTTP requests processed by the clinic back-office.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	chatMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_chat_messages_total",
			Help: "Chat messages stored, by sender side.",
		},
		[]string{"sender"},
	)
	chatTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_chat_transitions_total",
			Help: "Operator chat status changes, by target status.",
		},
		[]string{"status"},
	)
	chatTakeConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_chat_take_conflicts_total",
			Help: "Take attempts that lost the race for a waiting chat.",
		},
	)
	chatsPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_chats_purged_total",
			Help: "Chats removed by explicit delete or by blocking their patient.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		chatMessagesTotal,
		chatTransitionsTotal,
		chatTakeConflictsTotal,
		chatsPurgedTotal,
	)
}

func ObserveHTTPRequest(method, route string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(seconds)
}

func IncChatMessage(sender string) {
	chatMessagesTotal.WithLabelValues(sender).Inc()
}

func IncChatTransition(status string) {
	chatTransitionsTotal.WithLabelValues(status).Inc()
}

func IncTakeConflict() {
	chatTakeConflictsTotal.Inc()
}

func AddChatsPurged(n int64) {
	if n > 0 {
		chatsPurgedTotal.Add(float64(n))
	}
}
