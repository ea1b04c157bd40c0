package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/papapumpkin/conductor/internal/model"
)

// rawJSONMetadata covers both JSON schema generations with every field
// optional:
//
//	older: { id, name, status, owner, start_date, end_date, description, dependencies, tags }
//	newer: { track_id, type, status, created_at, updated_at, description }
type rawJSONMetadata struct {
	ID           string          `json:"id"`
	TrackID      string          `json:"track_id"`
	Name         string          `json:"name"`
	Status       model.Status    `json:"status"`
	Priority     model.Priority  `json:"priority"`
	Type         model.TrackType `json:"type"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Dependencies []string        `json:"dependencies"`
	Tags         []string        `json:"tags"`
	Branch       string          `json:"branch"`
	Description  string          `json:"description"`
	Owner        string          `json:"owner"`
}

// rawYAMLMetadata is the meta.yaml schema.
type rawYAMLMetadata struct {
	Name      string         `yaml:"name"`
	Status    model.Status   `yaml:"status"`
	Priority  model.Priority `yaml:"priority"`
	Created   string         `yaml:"created"`
	Completed string         `yaml:"completed"`
	Branch    string         `yaml:"branch"`
	Tags      []string       `yaml:"tags"`
	Commits   []string       `yaml:"commits"`
}

// ParseMetadata loads a track's metadata side-file. metadata.json is tried
// first, then meta.yaml; if neither exists the result is (nil, nil), since
// having no metadata is not an error. A structurally invalid file yields a
// *MetadataError so the caller can report it and continue with the track's
// index-level data.
func ParseMetadata(trackDir, trackID string) (*model.Metadata, error) {
	jsonPath := filepath.Join(trackDir, model.MetadataFileName)
	if data, err := os.ReadFile(jsonPath); err == nil {
		meta, err := ParseJSONMetadata(data, trackID)
		if err != nil {
			return nil, err
		}
		return meta, nil
	}

	yamlPath := filepath.Join(trackDir, model.MetaYAMLFileName)
	if data, err := os.ReadFile(yamlPath); err == nil {
		meta, err := ParseYAMLMetadata(data, trackID)
		if err != nil {
			return nil, err
		}
		return meta, nil
	}

	return nil, nil
}

// ParseJSONMetadata parses metadata.json content, accepting both schema
// generations. created_at prefers the newer key, falling back to
// start_date; likewise updated_at falls back to end_date.
func ParseJSONMetadata(data []byte, trackID string) (*model.Metadata, error) {
	// Pre-seed the zero-value defaults: Priority's zero value is Critical,
	// but an absent priority key must mean Medium.
	raw := rawJSONMetadata{Priority: model.PriorityMedium}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MetadataError{TrackID: trackID, Err: err}
	}

	created := raw.CreatedAt
	if created == "" {
		created = raw.StartDate
	}
	updated := raw.UpdatedAt
	if updated == "" {
		updated = raw.EndDate
	}

	return &model.Metadata{
		Status:       raw.Status,
		Priority:     raw.Priority,
		Type:         raw.Type,
		CreatedAt:    parseDatetime(created),
		UpdatedAt:    parseDatetime(updated),
		Dependencies: raw.Dependencies,
		Tags:         raw.Tags,
		Branch:       raw.Branch,
		Description:  raw.Description,
	}, nil
}

// ParseYAMLMetadata parses meta.yaml content.
func ParseYAMLMetadata(data []byte, trackID string) (*model.Metadata, error) {
	raw := rawYAMLMetadata{Priority: model.PriorityMedium}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &MetadataError{TrackID: trackID, Err: err}
	}

	return &model.Metadata{
		Status:    raw.Status,
		Priority:  raw.Priority,
		CreatedAt: parseDatetime(raw.Created),
		UpdatedAt: parseDatetime(raw.Completed),
		Tags:      raw.Tags,
		Branch:    raw.Branch,
	}, nil
}

// parseDatetime parses a date string flexibly: RFC 3339 first, then a bare
// date (midnight UTC). Surrounding parentheses and whitespace are stripped.
// Unparseable input yields the zero time, never an error.
func parseDatetime(s string) time.Time {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
