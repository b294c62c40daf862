package models

import (
	"github.com/google/uuid"
)

// AudioTrackKind identifies which of the three audio tracks a clip lives
// on. The set is closed.
type AudioTrackKind string

const (
	AudioTrackVoiceover AudioTrackKind = "voiceover"
	AudioTrackMusic     AudioTrackKind = "music"
	AudioTrackSFX       AudioTrackKind = "sfx"
)

// Valid reports whether k is one of the known track kinds.
func (k AudioTrackKind) Valid() bool {
	switch k {
	case AudioTrackVoiceover, AudioTrackMusic, AudioTrackSFX:
		return true
	}
	return false
}

// AudioTrackKinds lists every track kind in a stable order.
func AudioTrackKinds() []AudioTrackKind {
	return []AudioTrackKind{AudioTrackVoiceover, AudioTrackMusic, AudioTrackSFX}
}

// AudioClip is one audio segment positioned on the global timeline,
// independent of the video clip sequence. StartTime is global timeline
// seconds; trims and fades are relative to the clip's own media.
// SceneNumber is set for voiceover clips only.
type AudioClip struct {
	ID          uuid.UUID      `json:"id"`
	Type        AudioTrackKind `json:"type"`
	MediaURL    string         `json:"media_url,omitempty"`
	Duration    float64        `json:"duration"`
	Volume      float64        `json:"volume"`
	StartTime   float64        `json:"start_time"`
	TrimStart   float64        `json:"trim_start"`
	TrimEnd     float64        `json:"trim_end"`
	FadeIn      float64        `json:"fade_in"`
	FadeOut     float64        `json:"fade_out"`
	SceneNumber *int           `json:"scene_number,omitempty"`
	Label       string         `json:"label,omitempty"`
}

// EffectiveDuration is the clip's duration minus both trims.
func (a AudioClip) EffectiveDuration() float64 {
	return a.Duration - a.TrimStart - a.TrimEnd
}
