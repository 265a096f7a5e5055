package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts recognized commands by command and chat type.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "practice_bot_commands_total",
		Help: "Total bot commands handled by command and chat type",
	}, []string{"command", "chat_type"})

	// HandlerDuration tracks how long an update takes to handle, store calls included.
	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "practice_bot_handler_duration_seconds",
		Help:    "Update handling duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	}, []string{"command"})

	// HandlerErrors counts updates whose handler returned an error.
	HandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "practice_bot_handler_errors_total",
		Help: "Total update handler errors by command",
	}, []string{"command"})

	// SubmissionsTotal counts completed intake forms by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "practice_bot_submissions_total",
		Help: "Completed submission forms by result (stored, not_stored, cancelled)",
	}, []string{"result"})

	// MemberLookups counts group membership resolutions during /status.
	MemberLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "practice_bot_member_lookups_total",
		Help: "Group member resolutions by result (member, not_member, error)",
	}, []string{"result"})
)
