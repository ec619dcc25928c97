package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_connections_active",
			Help: "Current number of open WebSocket connections",
		},
	)

	RegisteredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_users_online",
			Help: "Current number of users in the session registry",
		},
	)

	HistoryLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_history_messages",
			Help: "Number of messages held in the replay buffer",
		},
	)

	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_broadcasts_total",
			Help: "Total number of events broadcast to all connections",
		},
		[]string{"event"},
	)

	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_events_rejected_total",
			Help: "Total number of inbound events discarded by validation",
		},
		[]string{"event"},
	)
)
