package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"trove-backend/internal/database/models"
	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"
	"trove-backend/internal/metrics"
	"trove-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ListResourcesQuery carries the raw list query parameters; nil means absent
type ListResourcesQuery struct {
	Source *string
	Cursor *string
	Limit  *string
}

// ResourceListResponse represents one page of resources
type ResourceListResponse struct {
	Data    []models.Resource `json:"data"`
	Cursor  *string           `json:"cursor"`
	HasMore bool              `json:"has_more"`
}

// ResourceService provides resource-related business logic
type ResourceService struct {
	repo      repository.ResourceRepositoryInterface
	validator *ResourceValidator
	fetcher   MetadataFetcherInterface
}

// Ensure ResourceService implements ResourceServiceInterface
var _ ResourceServiceInterface = (*ResourceService)(nil)

// NewResourceService creates a new resource service
func NewResourceService(repo repository.ResourceRepositoryInterface, validator *ResourceValidator, fetcher MetadataFetcherInterface) *ResourceService {
	return &ResourceService{
		repo:      repo,
		validator: validator,
		fetcher:   fetcher,
	}
}

// CreateResource validates body, backfills a missing title or description from the page
// itself, stores the resource and returns the stored row.
func (s *ResourceService) CreateResource(ctx context.Context, body []byte) (*models.Resource, error) {
	input, err := s.validator.Validate(body)
	if err != nil {
		return nil, err
	}

	if isBlank(input.Title) || isBlank(input.Description) {
		meta := s.fetcher.Fetch(ctx, input.URL)
		if isBlank(input.Title) && meta.Title != nil {
			input.Title = meta.Title
		}
		if isBlank(input.Description) && meta.Description != nil {
			input.Description = meta.Description
		}
	}

	resource := input.Resource()

	if err := s.repo.Create(ctx, resource); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	metrics.ResourcesCreated.WithLabelValues(string(resource.Source)).Inc()

	stored, err := s.repo.GetByID(ctx, resource.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back resource: %w", err)
	}
	if stored == nil {
		logger.WithContext(ctx).WithField("resource_id", resource.ID).Warn("created resource not visible on read-back")
		return resource, nil
	}
	return stored, nil
}

// GetResource retrieves a resource by ID. Unknown and malformed IDs are both not found.
func (s *ResourceService) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	resourceID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrResourceNotFound
	}

	resource, err := s.repo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	return resource, nil
}

// ListResources returns one page in created_at descending order. An out-of-range limit, an
// unknown source, or a cursor that is not an RFC 3339 timestamp is a client error.
func (s *ResourceService) ListResources(ctx context.Context, query ListResourcesQuery) (*ResourceListResponse, error) {
	params := repository.ListResourcesParams{Limit: DefaultPageSize}

	if query.Source != nil {
		source := models.ResourceSource(*query.Source)
		if !source.IsValid() {
			return nil, ErrInvalidSource
		}
		params.Source = &source
	}

	if query.Limit != nil && *query.Limit != "" {
		limit, err := strconv.Atoi(*query.Limit)
		if err != nil || limit < 1 || limit > MaxPageSize {
			return nil, apperrors.ErrInvalidPaginationParams
		}
		params.Limit = limit
	}

	if query.Cursor != nil && *query.Cursor != "" {
		before, err := time.Parse(time.RFC3339Nano, *query.Cursor)
		if err != nil {
			return nil, apperrors.ErrInvalidCursor
		}
		params.Before = &before
	}

	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	resp := &ResourceListResponse{
		Data:    page.Resources,
		HasMore: page.HasMore,
	}
	if resp.Data == nil {
		resp.Data = []models.Resource{}
	}
	if page.HasMore && len(page.Resources) > 0 {
		cursor := EncodeCursor(page.Resources[len(page.Resources)-1].CreatedAt)
		resp.Cursor = &cursor
	}
	return resp, nil
}

// DeleteResource removes a resource; author counters are left as they are
func (s *ResourceService) DeleteResource(ctx context.Context, id string) error {
	resourceID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.ErrResourceNotFound
	}

	if err := s.repo.Delete(ctx, resourceID); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// EncodeCursor renders a created_at value as a list cursor
func EncodeCursor(createdAt time.Time) string {
	return createdAt.UTC().Format(time.RFC3339Nano)
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
