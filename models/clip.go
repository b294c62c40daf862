package models

import (
	"github.com/google/uuid"
)

// Crop describes a rectangular crop region in percentages of the source
// frame. X/Y are the top-left corner, Width/Height the region size.
type Crop struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clip is one trimmed, orderable unit of video on the timeline.
// MediaURL may be empty, meaning the clip has not been generated yet and
// should render as a scene-numbered placeholder.
type Clip struct {
	ID            uuid.UUID `json:"id"`
	SceneNumber   int       `json:"scene_number"`
	VariantNumber int       `json:"variant_number"`
	MediaURL      string    `json:"media_url,omitempty"`
	Duration      float64   `json:"duration"`
	TrimStart     float64   `json:"trim_start"`
	TrimEnd       float64   `json:"trim_end"`
	Order         int       `json:"order"`
	Crop          *Crop     `json:"crop,omitempty"`
}

// EffectiveDuration is the clip's duration minus both trims. The timeline
// only ever stores clips where this is positive.
func (c Clip) EffectiveDuration() float64 {
	return c.Duration - c.TrimStart - c.TrimEnd
}

// HasMedia reports whether the clip has a generated media reference.
func (c Clip) HasMedia() bool {
	return c.MediaURL != ""
}
