package models

import (
	"gorm.io/datatypes"
)

// Resource is a saved reference to a URL
type Resource struct {
	BaseModel
	URL         string                      `json:"url" gorm:"not null;uniqueIndex:idx_resources_url"`
	Title       *string                     `json:"title"`
	Description *string                     `json:"description"`
	Source      ResourceSource              `json:"source" gorm:"type:text;not null;index"`
	SourceID    *string                     `json:"source_id"`
	Author      *string                     `json:"author"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"not null"`
	Notes       *string                     `json:"notes"`
	Latitude    *float64                    `json:"latitude"`
	Longitude   *float64                    `json:"longitude"`
	Metadata    datatypes.JSONMap           `json:"metadata"`
}

// TableName returns the table name for Resource
func (Resource) TableName() string {
	return "resources"
}
