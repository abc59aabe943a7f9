// Package metrics exposes prometheus counters for the notification fan-out
// and websocket layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	NotificationsCreated *prometheus.CounterVec
	PushesDelivered      prometheus.Counter
	PushesSkipped        prometheus.Counter
	EmailsSent           prometheus.Counter
	EmailsFailed         prometheus.Counter
	WebsocketConnections prometheus.Gauge
}

// NewMetrics creates new prometheus metrics
func NewMetrics() *Metrics {
	const namespace = "ladx"

	return &Metrics{
		NotificationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "The total number of notifications persisted, by type",
		}, []string{"type"}),
		PushesDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushes_delivered_total",
			Help:      "The total number of realtime events pushed to connected users",
		}),
		PushesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushes_skipped_total",
			Help:      "The total number of realtime events skipped because the user was offline",
		}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "The total number of notification emails sent",
		}),
		EmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "The total number of notification emails that failed to send",
		}),
		WebsocketConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "The current number of open websocket connections",
		}),
	}
}
