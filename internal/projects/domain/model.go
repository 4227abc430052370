package domain

import (
	"encoding/json"
	"time"
)

// Project represents a single site project owned by a user.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	PublicID    string          `json:"public_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Status      string          `json:"status"`
	BrandData   json.RawMessage `json:"brand_data,omitempty"`
	Slug        *string         `json:"slug,omitempty"`
	Published   bool            `json:"published"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

const (
	StatusDraft     = "draft"
	StatusGenerated = "generated"
)
