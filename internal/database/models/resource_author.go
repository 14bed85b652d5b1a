package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResourceAuthor is an author identity deduplicated per (platform, username).
// ResourceCount counts every link ever made and is never decremented.
type ResourceAuthor struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Platform      string    `json:"platform" gorm:"not null;uniqueIndex:idx_resource_authors_platform_username"`
	Username      string    `json:"username" gorm:"not null;uniqueIndex:idx_resource_authors_platform_username"`
	DisplayName   *string   `json:"display_name"`
	ProfileURL    *string   `json:"profile_url"`
	ResourceCount int       `json:"resource_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
}

// TableName returns the table name for ResourceAuthor
func (ResourceAuthor) TableName() string {
	return "resource_authors"
}

// BeforeCreate sets the UUID if not already set
func (a *ResourceAuthor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ResourceAuthorMap joins resources and authors. Rows go away with their resource.
type ResourceAuthorMap struct {
	ResourceID uuid.UUID       `json:"resource_id" gorm:"type:uuid;primaryKey;index:idx_resource_author_map_resource_id"`
	AuthorID   uuid.UUID       `json:"author_id" gorm:"type:uuid;primaryKey;index:idx_resource_author_map_author_id"`
	Resource   *Resource       `json:"-" gorm:"foreignKey:ResourceID;references:ID;constraint:OnDelete:CASCADE"`
	Author     *ResourceAuthor `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ResourceAuthorMap
func (ResourceAuthorMap) TableName() string {
	return "resource_author_map"
}
