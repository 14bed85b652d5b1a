package service

import (
	"context"

	"trove-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// ResourceServiceInterface defines the interface for the direct resource API
type ResourceServiceInterface interface {
	CreateResource(ctx context.Context, body []byte) (*models.Resource, error)
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	ListResources(ctx context.Context, query ListResourcesQuery) (*ResourceListResponse, error)
	DeleteResource(ctx context.Context, id string) error
}

// WebhookServiceInterface defines the interface for webhook ingestion
type WebhookServiceInterface interface {
	HandleGitHubDelivery(ctx context.Context, delivery GitHubDelivery) (*WebhookResult, error)
}

// MetadataFetcherInterface looks up a page's title and description. Implementations absorb
// every failure and return an empty PageMetadata instead.
type MetadataFetcherInterface interface {
	Fetch(ctx context.Context, rawURL string) PageMetadata
}

// MetadataCache stores encoded PageMetadata by URL. Get returns nil, nil on a miss.
type MetadataCache interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Set(ctx context.Context, url string, value []byte) error
}

// SignatureVerifier checks a webhook signature over the raw body
type SignatureVerifier interface {
	Verify(body []byte, signature string) bool
}
