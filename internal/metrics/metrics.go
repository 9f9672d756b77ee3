// Package metrics provides Prometheus metrics for the portfolio server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

var (
	// HTTPRequestsTotal counts requests by chi route pattern.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LoginAttemptsTotal counts admin logins by outcome.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Admin login attempts",
		},
		[]string{"outcome"},
	)

	// ContactSubmissionsTotal counts contact form submissions by outcome.
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions",
		},
		[]string{"outcome"},
	)

	// ResumeUploadsTotal counts résumé uploads by outcome.
	ResumeUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resume_uploads_total",
			Help:      "Resume uploads",
		},
		[]string{"outcome"},
	)

	// ContentChangesTotal counts dashboard adds and deletes.
	ContentChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_changes_total",
			Help:      "Dashboard list additions and deletions",
		},
		[]string{"entity", "action"},
	)

	// NotificationsTotal counts contact notification emails by outcome.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Contact notification emails",
		},
		[]string{"outcome"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RecordRequest records one served HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordLogin(outcome string)   { LoginAttemptsTotal.WithLabelValues(outcome).Inc() }
func RecordContact(outcome string) { ContactSubmissionsTotal.WithLabelValues(outcome).Inc() }
func RecordUpload(outcome string)  { ResumeUploadsTotal.WithLabelValues(outcome).Inc() }

func RecordContentChange(entity, action string) {
	ContentChangesTotal.WithLabelValues(entity, action).Inc()
}

func RecordNotification(outcome string) { NotificationsTotal.WithLabelValues(outcome).Inc() }
