package testutils

import (
	"fmt"
	"time"

	"trove-backend/internal/database/models"

	"github.com/google/uuid"
)

// ResourceFactory provides methods to create test Resource data
type ResourceFactory struct {
	seq int
}

// NewResourceFactory creates a new ResourceFactory
func NewResourceFactory() *ResourceFactory {
	return &ResourceFactory{}
}

// Create creates a test Resource with default values and a unique URL
func (f *ResourceFactory) Create() *models.Resource {
	f.seq++
	title := fmt.Sprintf("Test Resource %d", f.seq)
	return &models.Resource{
		BaseModel: models.BaseModel{
			ID: uuid.New(),
		},
		URL:      fmt.Sprintf("https://example.com/resources/%d-%s", f.seq, uuid.NewString()[:8]),
		Title:    &title,
		Source:   models.SourceManual,
		Tags:     []string{},
		Metadata: nil,
	}
}

// WithURL sets a custom URL for the resource
func (f *ResourceFactory) WithURL(url string) *models.Resource {
	r := f.Create()
	r.URL = url
	return r
}

// WithSource sets a custom source for the resource
func (f *ResourceFactory) WithSource(source models.ResourceSource) *models.Resource {
	r := f.Create()
	r.Source = source
	return r
}

// WithCreatedAt pins created_at, which drives list ordering and cursors
func (f *ResourceFactory) WithCreatedAt(createdAt time.Time) *models.Resource {
	r := f.Create()
	r.CreatedAt = createdAt.UTC().Truncate(time.Microsecond)
	r.UpdatedAt = r.CreatedAt
	return r
}

// ResourceAuthorFactory provides methods to create test ResourceAuthor data
type ResourceAuthorFactory struct{}

// NewResourceAuthorFactory creates a new ResourceAuthorFactory
func NewResourceAuthorFactory() *ResourceAuthorFactory {
	return &ResourceAuthorFactory{}
}

// Create creates a test GitHub author with default values
func (f *ResourceAuthorFactory) Create() *models.ResourceAuthor {
	profile := "https://github.com/octocat"
	return &models.ResourceAuthor{
		ID:            uuid.New(),
		Platform:      models.AuthorPlatformGitHub,
		Username:      "octocat",
		ProfileURL:    &profile,
		ResourceCount: 1,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

// WithUsername sets a custom username and matching profile URL
func (f *ResourceAuthorFactory) WithUsername(username string) *models.ResourceAuthor {
	a := f.Create()
	profile := "https://github.com/" + username
	a.Username = username
	a.ProfileURL = &profile
	return a
}

// FactorySet provides access to all factories
type FactorySet struct {
	Resource       *ResourceFactory
	ResourceAuthor *ResourceAuthorFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Resource:       NewResourceFactory(),
		ResourceAuthor: NewResourceAuthorFactory(),
	}
}
