package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"trove-backend/internal/database/models"
	apperrors "trove-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CreateResourceInput is a creation payload narrowed to known-valid types
type CreateResourceInput struct {
	URL         string                 `json:"url"`
	Source      models.ResourceSource  `json:"source"`
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	SourceID    *string                `json:"source_id,omitempty"`
	Author      *string                `json:"author,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Notes       *string                `json:"notes,omitempty"`
	Latitude    *float64               `json:"latitude,omitempty"`
	Longitude   *float64               `json:"longitude,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

var jsonNull = []byte("null")

// ErrInvalidSource rejects a list filter naming an unknown source
var ErrInvalidSource = apperrors.NewBadRequestError("invalid source. Must be one of: " + models.SourceList())

// Resource builds the row to insert for this input
func (in *CreateResourceInput) Resource() *models.Resource {
	return &models.Resource{
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		Source:      in.Source,
		SourceID:    in.SourceID,
		Author:      in.Author,
		Tags:        in.Tags,
		Notes:       in.Notes,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Metadata:    in.Metadata,
	}
}

// ResourceValidator turns untrusted creation bodies into CreateResourceInput
type ResourceValidator struct {
	validate *validator.Validate
}

const (
	urlRule    = "required,url"
	sourceRule = "required,resource_source"
)

// NewResourceValidator registers the resource_source rule on v
func NewResourceValidator(v *validator.Validate) *ResourceValidator {
	_ = v.RegisterValidation("resource_source", func(fl validator.FieldLevel) bool {
		return models.ResourceSource(fl.Field().String()).IsValid()
	})
	return &ResourceValidator{validate: v}
}

// Validate decodes body field by field and collects every violation before returning.
// Syntactically broken JSON (or a bare null) is a BadRequestError; everything else that
// is wrong comes back as *ValidationErrors.
func (rv *ResourceValidator) Validate(body []byte) (*CreateResourceInput, error) {
	if !json.Valid(body) {
		return nil, apperrors.ErrInvalidJSONBody
	}
	if bytes.Equal(bytes.TrimSpace(body), jsonNull) {
		return nil, apperrors.ErrInvalidJSONBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		verrs := &apperrors.ValidationErrors{}
		verrs.Add("body", "Request body must be a JSON object")
		return nil, verrs
	}

	return rv.validateFields(fields)
}

// validateFields is Validate over an already-split JSON object
func (rv *ResourceValidator) validateFields(fields map[string]json.RawMessage) (*CreateResourceInput, error) {
	verrs := &apperrors.ValidationErrors{}
	input := &CreateResourceInput{}

	switch {
	case !decodeField(fields, "url", &input.URL) || strings.TrimSpace(input.URL) == "":
		verrs.Add("url", "url is required and must be a non-empty string")
	case rv.validate.Var(input.URL, urlRule) != nil || !hasAuthority(input.URL):
		verrs.Add("url", "url must be a valid URL")
	}

	var source string
	if !decodeField(fields, "source", &source) || rv.validate.Var(source, sourceRule) != nil {
		verrs.Add("source", sourceMessage())
	}
	input.Source = models.ResourceSource(source)

	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"title", &input.Title},
		{"description", &input.Description},
		{"source_id", &input.SourceID},
		{"author", &input.Author},
		{"notes", &input.Notes},
	} {
		if _, ok := fields[f.name]; !ok {
			continue
		}
		var s string
		if !decodeField(fields, f.name, &s) {
			verrs.Add(f.name, fmt.Sprintf("%s must be a string", f.name))
			continue
		}
		*f.dst = &s
	}

	if _, ok := fields["tags"]; ok {
		if tags, ok := decodeTags(fields["tags"]); ok {
			input.Tags = tags
		} else {
			verrs.Add("tags", "tags must be an array of strings")
		}
	}

	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"latitude", &input.Latitude},
		{"longitude", &input.Longitude},
	} {
		if _, ok := fields[f.name]; !ok {
			continue
		}
		var n float64
		if !decodeField(fields, f.name, &n) {
			verrs.Add(f.name, fmt.Sprintf("%s must be a number", f.name))
			continue
		}
		*f.dst = &n
	}

	if _, ok := fields["metadata"]; ok {
		var meta map[string]interface{}
		if !decodeField(fields, "metadata", &meta) {
			verrs.Add("metadata", "metadata must be a JSON object")
		} else {
			input.Metadata = meta
		}
	}

	if !verrs.Empty() {
		return nil, verrs
	}
	return input, nil
}

// decodeField reports false when the field is absent, null, or not decodable into dst
func decodeField(fields map[string]json.RawMessage, name string, dst interface{}) bool {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// decodeTags requires a JSON array whose every element is a string; null elements are rejected
func decodeTags(raw json.RawMessage) ([]string, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, false
	}
	tags := make([]string, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '"' {
			return nil, false
		}
		var tag string
		if err := json.Unmarshal(elem, &tag); err != nil {
			return nil, false
		}
		tags = append(tags, tag)
	}
	return tags, true
}

// hasAuthority rejects opaque and host-less URLs (mailto:, javascript:, file:///) that the url rule lets through
func hasAuthority(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func sourceMessage() string {
	return "source must be one of: " + models.SourceList()
}
