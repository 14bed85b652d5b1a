package repository

import (
	"context"
	"time"

	"trove-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// ListResourcesParams filters and bounds a page of resources
type ListResourcesParams struct {
	Source *models.ResourceSource
	Before *time.Time // exclusive upper bound on created_at
	Limit  int
}

// ResourcePage is one page of resources in created_at descending order
type ResourcePage struct {
	Resources []models.Resource
	HasMore   bool
}

// UpsertAuthorParams identifies an author and carries optional profile fields.
// Nil profile fields leave stored values untouched on conflict.
type UpsertAuthorParams struct {
	Platform    string
	Username    string
	DisplayName *string
	ProfileURL  *string
}

// ResourceRepositoryInterface defines the interface for resource repository operations
type ResourceRepositoryInterface interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	List(ctx context.Context, params ListResourcesParams) (*ResourcePage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceAuthorRepositoryInterface defines the interface for author repository operations
type ResourceAuthorRepositoryInterface interface {
	Upsert(ctx context.Context, params UpsertAuthorParams) (*models.ResourceAuthor, error)
	GetByPlatformUsername(ctx context.Context, platform, username string) (*models.ResourceAuthor, error)
	LinkToResource(ctx context.Context, resourceID, authorID uuid.UUID) error
}
