package service

import (
	"encoding/json"

	"trove-backend/internal/database/models"

	"github.com/google/go-github/v57/github"
)

const (
	// GitHubEventStar is the X-GitHub-Event value for star/unstar deliveries
	GitHubEventStar   = "star"
	starActionCreated = "created"
)

// StarredRepository is a star event reduced to what gets stored
type StarredRepository struct {
	URL         string
	Title       *string
	Description *string
	SourceID    *string
	Tags        []string
	Metadata    map[string]interface{}

	AuthorUsername    *string
	AuthorDisplayName *string
	AuthorProfileURL  *string
}

// NormalizeStarEvent maps a GitHub webhook delivery to a StarredRepository. It reports false
// for anything other than a "star" event with action "created" and a repository that has an
// html_url, including payloads that do not decode as a star event at all.
func NormalizeStarEvent(eventType string, payload []byte) (*StarredRepository, bool) {
	if eventType != GitHubEventStar {
		return nil, false
	}

	var event github.StarEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, false
	}
	if event.GetAction() != starActionCreated {
		return nil, false
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetHTMLURL() == "" {
		return nil, false
	}

	tags := repo.Topics
	if tags == nil {
		tags = []string{}
	}

	starred := &StarredRepository{
		URL:         repo.GetHTMLURL(),
		Title:       repo.FullName,
		Description: repo.Description,
		SourceID:    repo.FullName,
		Tags:        tags,
		Metadata: map[string]interface{}{
			"language": nullable(repo.Language),
			"stars":    nullable(repo.StargazersCount),
		},
	}

	if sender := event.GetSender(); sender != nil {
		starred.AuthorUsername = nonEmptyPtr(sender.Login)
		starred.AuthorDisplayName = nonEmptyPtr(sender.Name)
		starred.AuthorProfileURL = nonEmptyPtr(sender.HTMLURL)
	}

	return starred, true
}

// Resource builds the row to insert for this star
func (s *StarredRepository) Resource() *models.Resource {
	return &models.Resource{
		URL:         s.URL,
		Title:       s.Title,
		Description: s.Description,
		Source:      models.SourceGitHubStar,
		SourceID:    s.SourceID,
		Author:      s.AuthorUsername,
		Tags:        s.Tags,
		Metadata:    s.Metadata,
	}
}

// nullable keeps JSON null for absent values instead of a typed nil pointer
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nonEmptyPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
