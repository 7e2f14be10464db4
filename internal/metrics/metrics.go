package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MembersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_members_registered_total",
			Help: "Total number of registered members",
		},
	)

	WebhooksReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_webhooks_received_total",
			Help: "Total number of payment webhooks received",
		},
		[]string{"event"},
	)

	WebhooksRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_webhooks_rejected_total",
			Help: "Total number of webhooks rejected by signature check",
		},
	)

	PaymentsReconciledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_payments_reconciled_total",
			Help: "Total number of payments applied to subscriptions",
		},
	)

	PaymentsDuplicateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymflow_payments_duplicate_total",
			Help: "Total number of duplicate webhook deliveries ignored",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymflow_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWebhook(event string) {
	WebhooksReceivedTotal.WithLabelValues(event).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
