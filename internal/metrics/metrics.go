package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trove"

// Metadata fetch outcomes
const (
	MetadataOutcomeFetched  = "fetched"
	MetadataOutcomeEmpty    = "empty"
	MetadataOutcomeRejected = "rejected" // scheme not http/https
	MetadataOutcomeFailed   = "failed"
	MetadataOutcomeCacheHit = "cache_hit"
)

// Webhook delivery outcomes
const (
	WebhookOutcomeCreated   = "created"
	WebhookOutcomeIgnored   = "ignored"
	WebhookOutcomeDuplicate = "duplicate"
	WebhookOutcomeRejected  = "rejected"
	WebhookOutcomeFailed    = "failed"
)

var (
	ResourcesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Resources stored, by source",
	}, []string{"source"})

	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "GitHub webhook deliveries, by event type and outcome",
	}, []string{"event", "outcome"})

	MetadataFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_fetches_total",
		Help:      "Remote metadata lookups, by outcome",
	}, []string{"outcome"})

	AuthorLinkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "author_link_failures_total",
		Help:      "Author upserts or links that failed after the resource was stored",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"method", "route", "status"})
)
