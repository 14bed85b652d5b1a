package models

import "strings"

// ResourceSource defines where a resource was saved from
type ResourceSource string

const (
	SourceGitHubStar  ResourceSource = "github_star"
	SourceExtension   ResourceSource = "extension"
	SourceIOSShortcut ResourceSource = "ios_shortcut"
	SourceManual      ResourceSource = "manual"
)

// AllSources lists every accepted source in declaration order
var AllSources = []ResourceSource{SourceGitHubStar, SourceExtension, SourceIOSShortcut, SourceManual}

// IsValid checks if the ResourceSource is valid
func (s ResourceSource) IsValid() bool {
	switch s {
	case SourceGitHubStar, SourceExtension, SourceIOSShortcut, SourceManual:
		return true
	}
	return false
}

// SourceList renders the accepted sources as "a, b, c" for error messages
func SourceList() string {
	names := make([]string, 0, len(AllSources))
	for _, s := range AllSources {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// AuthorPlatformGitHub is the platform recorded for authors ingested from GitHub
const AuthorPlatformGitHub = "github"
