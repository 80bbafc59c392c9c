// Package metrics holds the Prometheus collectors of the site service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace prefixes every metric name.
	Namespace = "resonant"

	// Submission outcomes.
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	// Notification results.
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// Metrics holds every collector.
type Metrics struct {
	Submissions          *prometheus.CounterVec
	Notifications        *prometheus.CounterVec
	NotificationDuration *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	ContentEntries       *prometheus.GaugeVec
	Reloads              *prometheus.CounterVec
}

// New creates and registers the collectors with reg, or with the default
// registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Start-project submissions by outcome.",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "intake",
			Name:      "notifications_total",
			Help:      "Notification attempts by channel and result.",
		}, []string{"channel", "result"}),
		NotificationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "intake",
			Name:      "notification_duration_seconds",
			Help:      "Time spent delivering a notification.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ContentEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "content",
			Name:      "entries",
			Help:      "Entries in the snapshot being served, by collection.",
		}, []string{"collection"}),
		Reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "content",
			Name:      "reloads_total",
			Help:      "Content reloads by result.",
		}, []string{"result"}),
	}
}

// ObserveNotification records one notification attempt.
func (m *Metrics) ObserveNotification(channel, result string, took time.Duration) {
	m.Notifications.WithLabelValues(channel, result).Inc()
	if result != ResultSkipped {
		m.NotificationDuration.WithLabelValues(channel).Observe(took.Seconds())
	}
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
