package service

import (
	"context"
	"encoding/json"
	"fmt"

	"trove-backend/internal/database/models"
	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"
	"trove-backend/internal/metrics"
	"trove-backend/internal/repository"

	"github.com/google/uuid"
)

// GitHubDelivery is one inbound webhook request as received
type GitHubDelivery struct {
	Event      string // X-GitHub-Event
	DeliveryID string // X-GitHub-Delivery
	Signature  string // X-Hub-Signature-256
	Body       []byte
}

// WebhookResult describes a delivery that was accepted. Ignored deliveries carry a
// Message and no ResourceID.
type WebhookResult struct {
	Created    bool
	ResourceID uuid.UUID
	Message    string
}

// WebhookService ingests GitHub star deliveries
type WebhookService struct {
	resources repository.ResourceRepositoryInterface
	authors   repository.ResourceAuthorRepositoryInterface
	verifier  SignatureVerifier
}

// Ensure WebhookService implements WebhookServiceInterface
var _ WebhookServiceInterface = (*WebhookService)(nil)

// NewWebhookService creates a new webhook service
func NewWebhookService(resources repository.ResourceRepositoryInterface, authors repository.ResourceAuthorRepositoryInterface, verifier SignatureVerifier) *WebhookService {
	return &WebhookService{
		resources: resources,
		authors:   authors,
		verifier:  verifier,
	}
}

// HandleGitHubDelivery verifies and ingests a delivery.
//
// Signature problems, malformed JSON and duplicate URLs come back as typed errors. Events
// other than a created star are acknowledged with an "ignored" result. Once the resource is
// stored, author upsert/link failures are logged and do not fail the delivery.
func (s *WebhookService) HandleGitHubDelivery(ctx context.Context, delivery GitHubDelivery) (*WebhookResult, error) {
	ctx = logger.ContextWithDeliveryID(ctx, delivery.DeliveryID)
	log := logger.WithContext(ctx).WithField("event", delivery.Event)

	if delivery.Signature == "" {
		s.count(delivery.Event, metrics.WebhookOutcomeRejected)
		return nil, apperrors.ErrMissingSignature
	}
	if !s.verifier.Verify(delivery.Body, delivery.Signature) {
		s.count(delivery.Event, metrics.WebhookOutcomeRejected)
		log.Warn("webhook signature mismatch")
		return nil, apperrors.ErrInvalidSignature
	}

	if delivery.Event != GitHubEventStar {
		s.count(delivery.Event, metrics.WebhookOutcomeIgnored)
		return &WebhookResult{Message: "Ignored event: " + delivery.Event}, nil
	}

	if !json.Valid(delivery.Body) {
		s.count(delivery.Event, metrics.WebhookOutcomeRejected)
		return nil, apperrors.ErrMalformedWebhookPayload
	}

	starred, ok := NormalizeStarEvent(delivery.Event, delivery.Body)
	if !ok {
		s.count(delivery.Event, metrics.WebhookOutcomeIgnored)
		return &WebhookResult{Message: "Ignored (not a star creation)"}, nil
	}

	resource := starred.Resource()
	if err := s.resources.Create(ctx, resource); err != nil {
		if apperrors.IsAlreadyExists(err) {
			s.count(delivery.Event, metrics.WebhookOutcomeDuplicate)
			log.WithField("url", resource.URL).Info("starred repository already stored")
			return nil, err
		}
		s.count(delivery.Event, metrics.WebhookOutcomeFailed)
		return nil, fmt.Errorf("failed to store starred repository: %w", err)
	}
	metrics.ResourcesCreated.WithLabelValues(string(models.SourceGitHubStar)).Inc()

	if starred.AuthorUsername != nil {
		s.linkAuthor(ctx, resource.ID, starred)
	}

	s.count(delivery.Event, metrics.WebhookOutcomeCreated)
	log.WithField("resource_id", resource.ID).Info("starred repository stored")
	return &WebhookResult{Created: true, ResourceID: resource.ID}, nil
}

// linkAuthor upserts the sender and links it. The resource is already committed, so failures
// here are only logged.
func (s *WebhookService) linkAuthor(ctx context.Context, resourceID uuid.UUID, starred *StarredRepository) {
	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"resource_id": resourceID,
		"username":    *starred.AuthorUsername,
	})

	author, err := s.authors.Upsert(ctx, repository.UpsertAuthorParams{
		Platform:    models.AuthorPlatformGitHub,
		Username:    *starred.AuthorUsername,
		DisplayName: starred.AuthorDisplayName,
		ProfileURL:  starred.AuthorProfileURL,
	})
	if err != nil {
		metrics.AuthorLinkFailures.Inc()
		log.WithError(err).Warn("author upsert failed; resource kept without author link")
		return
	}

	if err := s.authors.LinkToResource(ctx, resourceID, author.ID); err != nil {
		metrics.AuthorLinkFailures.Inc()
		log.WithError(err).Warn("author link failed; resource kept without author link")
	}
}

// count keeps the event label bounded; the header is caller-controlled before verification
func (s *WebhookService) count(event, outcome string) {
	if event != GitHubEventStar {
		event = "other"
	}
	metrics.WebhookDeliveries.WithLabelValues(event, outcome).Inc()
}
