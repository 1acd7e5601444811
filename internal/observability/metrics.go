// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuideSubmissions counts guide submissions by outcome
	// (accepted, invalid, unknown_character, rejected_upload, storage_failure).
	GuideSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guidepost_guide_submissions_total",
		Help: "Total number of guide submissions by outcome",
	}, []string{"outcome"})

	// ModerationDecisions counts approve/reject decisions.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guidepost_moderation_decisions_total",
		Help: "Total number of moderation decisions by action",
	}, []string{"action"})

	// UploadRejections counts rejected uploads by reason
	// (unsupported_media, payload_too_large, empty_payload).
	UploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guidepost_upload_rejections_total",
		Help: "Total number of rejected image uploads by reason",
	}, []string{"reason"})

	// LoginAttempts counts login attempts by result (success, failure).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guidepost_login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guidepost_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
