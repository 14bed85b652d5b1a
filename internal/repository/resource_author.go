package repository

import (
	"context"
	"errors"
	"time"

	"trove-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResourceAuthorRepository handles database operations for resource authors
type ResourceAuthorRepository struct {
	db *gorm.DB
}

// Ensure ResourceAuthorRepository implements ResourceAuthorRepositoryInterface
var _ ResourceAuthorRepositoryInterface = (*ResourceAuthorRepository)(nil)

// NewResourceAuthorRepository creates a new resource author repository
func NewResourceAuthorRepository(db *gorm.DB) *ResourceAuthorRepository {
	return &ResourceAuthorRepository{db: db}
}

// Upsert inserts the author with resource_count = 1, or on (platform, username) conflict
// increments resource_count by one and overwrites display_name/profile_url only with
// non-null values. The persisted row is read back inside the same transaction; its ID is
// the surviving one, not necessarily the one proposed here.
func (r *ResourceAuthorRepository) Upsert(ctx context.Context, params UpsertAuthorParams) (*models.ResourceAuthor, error) {
	var persisted models.ResourceAuthor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := &models.ResourceAuthor{
			ID:            uuid.New(),
			Platform:      params.Platform,
			Username:      params.Username,
			DisplayName:   params.DisplayName,
			ProfileURL:    params.ProfileURL,
			ResourceCount: 1,
			CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "platform"}, {Name: "username"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"display_name":   gorm.Expr("COALESCE(EXCLUDED.display_name, resource_authors.display_name)"),
				"profile_url":    gorm.Expr("COALESCE(EXCLUDED.profile_url, resource_authors.profile_url)"),
				"resource_count": gorm.Expr("resource_authors.resource_count + 1"),
			}),
		}).Create(candidate).Error
		if err != nil {
			return err
		}

		return tx.Where("platform = ? AND username = ?", params.Platform, params.Username).
			Take(&persisted).Error
	})
	if err != nil {
		return nil, err
	}
	return &persisted, nil
}

// GetByPlatformUsername retrieves an author by identity. A missing row returns (nil, nil).
func (r *ResourceAuthorRepository) GetByPlatformUsername(ctx context.Context, platform, username string) (*models.ResourceAuthor, error) {
	var author models.ResourceAuthor
	err := r.db.WithContext(ctx).Where("platform = ? AND username = ?", platform, username).Take(&author).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// LinkToResource inserts a join row between a resource and an author
func (r *ResourceAuthorRepository) LinkToResource(ctx context.Context, resourceID, authorID uuid.UUID) error {
	link := &models.ResourceAuthorMap{ResourceID: resourceID, AuthorID: authorID}
	return r.db.WithContext(ctx).Create(link).Error
}
