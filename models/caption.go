package models

import (
	"github.com/google/uuid"
)

// Caption is one time-windowed text entry on the global timeline.
// Windows are not required to be disjoint; auto-generated captions within
// one scene are contiguous and non-overlapping, manual edits may overlap.
type Caption struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	StartTime   float64   `json:"start_time"`
	EndTime     float64   `json:"end_time"`
	SceneNumber int       `json:"scene_number"`
}

// ContainsTime reports whether the caption window contains t. The check is
// inclusive on both ends, so stacked captions may all be active at once.
func (c Caption) ContainsTime(t float64) bool {
	return t >= c.StartTime && t <= c.EndTime
}
