package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the persisted identity of one composition. The live editing
// state lives in a session snapshot (see the project_states table); the
// project row carries identity and display metadata only.
type Project struct {
	ID           uuid.UUID `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	AspectRatio  string    `json:"aspect_ratio,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
