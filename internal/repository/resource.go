package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trove-backend/internal/database/models"
	apperrors "trove-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceRepository handles database operations for resources
type ResourceRepository struct {
	db *gorm.DB
}

// Ensure ResourceRepository implements ResourceRepositoryInterface
var _ ResourceRepositoryInterface = (*ResourceRepository)(nil)

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Create inserts a new resource. A duplicate URL yields apperrors.ErrResourceExists and
// nothing is written; any other failure is returned wrapped as-is.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if resource.Tags == nil {
		resource.Tags = []string{}
	}
	// Postgres keeps microseconds; truncating here keeps the in-memory row equal to the stored one.
	if resource.CreatedAt.IsZero() {
		now := time.Now().UTC().Truncate(time.Microsecond)
		resource.CreatedAt = now
		resource.UpdatedAt = now
	}
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrResourceExists
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// GetByID retrieves a resource by ID. A missing row returns (nil, nil).
func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resource, nil
}

// List returns one page ordered by created_at DESC. Ties on created_at fall back to id DESC
// so the order is stable between calls. One extra row is read to compute HasMore.
func (r *ResourceRepository) List(ctx context.Context, params ListResourcesParams) (*ResourcePage, error) {
	query := r.db.WithContext(ctx).Model(&models.Resource{})
	if params.Source != nil {
		query = query.Where("source = ?", *params.Source)
	}
	if params.Before != nil {
		query = query.Where("created_at < ?", *params.Before)
	}

	var rows []models.Resource
	if err := query.Order("created_at DESC").Order("id DESC").Limit(params.Limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}

	page := &ResourcePage{Resources: rows}
	if len(rows) > params.Limit {
		page.HasMore = true
		page.Resources = rows[:params.Limit]
	}
	return page, nil
}

// Delete removes a resource by ID; its author_map rows cascade, authors are untouched.
func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Resource{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
