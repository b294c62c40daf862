package models

import (
	"time"

	"github.com/google/uuid"
)

// RenderJob tracks a server-side render submitted to the external render
// service. Status, progress and message are opaque values reported back by
// that service; the engine never interprets them beyond display.
type RenderJob struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	RenderID     *string    `json:"render_id,omitempty"`
	Status       string     `json:"status"`
	Progress     *float64   `json:"progress,omitempty"`
	Message      *string    `json:"message,omitempty"`
	OutputURL    *string    `json:"output_url,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RenderPayload is the full composition description handed to the external
// render service: the current model snapshot plus export settings. The
// engine performs no encoding itself.
type RenderPayload struct {
	ProjectID    uuid.UUID      `json:"project_id"`
	Clips        []Clip         `json:"clips"`
	Transitions  []Transition   `json:"transitions"`
	AudioClips   []AudioClip    `json:"audio_clips"`
	Captions     []Caption      `json:"captions"`
	CaptionStyle CaptionStyle   `json:"caption_style"`
	Settings     ExportSettings `json:"settings"`
}
