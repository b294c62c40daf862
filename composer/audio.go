package composer

import (
	"fmt"

	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// AudioTracks holds the three independently managed audio collections
// (voiceover, music, sfx). Update and remove are routed by the clip's own
// stored type, so callers never need to know which bucket a clip lives in.
type AudioTracks struct {
	tracks map[models.AudioTrackKind][]models.AudioClip
}

// NewAudioTracks returns an empty three-track model.
func NewAudioTracks() *AudioTracks {
	return &AudioTracks{
		tracks: map[models.AudioTrackKind][]models.AudioClip{
			models.AudioTrackVoiceover: nil,
			models.AudioTrackMusic:     nil,
			models.AudioTrackSFX:       nil,
		},
	}
}

// Track returns a copy of the clips on one track.
func (a *AudioTracks) Track(kind models.AudioTrackKind) []models.AudioClip {
	src := a.tracks[kind]
	out := make([]models.AudioClip, len(src))
	copy(out, src)
	return out
}

// All returns every audio clip across the three tracks, in stable track
// order.
func (a *AudioTracks) All() []models.AudioClip {
	var out []models.AudioClip
	for _, kind := range models.AudioTrackKinds() {
		out = append(out, a.tracks[kind]...)
	}
	return out
}

// AddClip validates and stores a clip on the track named by its own Type
// field. Fades that over-subscribe the effective duration are clamped,
// not rejected.
func (a *AudioTracks) AddClip(clip models.AudioClip) (models.AudioClip, error) {
	if !clip.Type.Valid() {
		return models.AudioClip{}, fmt.Errorf("audio track %q: %w", clip.Type, ErrInvalidAudioTrack)
	}
	if err := validateTrim(clip.Duration, clip.TrimStart, clip.TrimEnd); err != nil {
		return models.AudioClip{}, err
	}
	if clip.ID == uuid.Nil {
		clip.ID = uuid.New()
	}
	clip.Volume = clampVolume(clip.Volume)
	clampFades(&clip)
	a.tracks[clip.Type] = append(a.tracks[clip.Type], clip)
	return clip, nil
}

// RemoveClip deletes a clip by id, whichever track it lives on.
func (a *AudioTracks) RemoveClip(id uuid.UUID) error {
	for kind, clips := range a.tracks {
		for i := range clips {
			if clips[i].ID == id {
				a.tracks[kind] = append(clips[:i], clips[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("audio clip %s: %w", id, ErrAudioClipNotFound)
}

// AudioClipUpdate carries the updatable audio clip fields. Pointer fields
// distinguish omitted values from explicit zeroes.
type AudioClipUpdate struct {
	Volume    *float64 `json:"volume,omitempty"`
	StartTime *float64 `json:"start_time,omitempty"`
	TrimStart *float64 `json:"trim_start,omitempty"`
	TrimEnd   *float64 `json:"trim_end,omitempty"`
	FadeIn    *float64 `json:"fade_in,omitempty"`
	FadeOut   *float64 `json:"fade_out,omitempty"`
	Label     *string  `json:"label,omitempty"`
	MediaURL  *string  `json:"media_url,omitempty"`
}

// UpdateClip applies a partial update to a clip by id. The clip is found
// by scanning all three tracks; its stored Type decides the bucket. Trim
// updates are validated as a pair against the clip's duration; fades are
// re-clamped after every change.
func (a *AudioTracks) UpdateClip(id uuid.UUID, upd AudioClipUpdate) (models.AudioClip, error) {
	for kind, clips := range a.tracks {
		for i := range clips {
			if clips[i].ID != id {
				continue
			}
			clip := clips[i]
			if upd.Volume != nil {
				clip.Volume = clampVolume(*upd.Volume)
			}
			if upd.StartTime != nil {
				clip.StartTime = *upd.StartTime
				if clip.StartTime < 0 {
					clip.StartTime = 0
				}
			}
			trimStart, trimEnd := clip.TrimStart, clip.TrimEnd
			if upd.TrimStart != nil {
				trimStart = *upd.TrimStart
			}
			if upd.TrimEnd != nil {
				trimEnd = *upd.TrimEnd
			}
			if trimStart != clip.TrimStart || trimEnd != clip.TrimEnd {
				if err := validateTrim(clip.Duration, trimStart, trimEnd); err != nil {
					return models.AudioClip{}, err
				}
				clip.TrimStart = trimStart
				clip.TrimEnd = trimEnd
			}
			if upd.FadeIn != nil {
				clip.FadeIn = *upd.FadeIn
			}
			if upd.FadeOut != nil {
				clip.FadeOut = *upd.FadeOut
			}
			if upd.Label != nil {
				clip.Label = *upd.Label
			}
			if upd.MediaURL != nil {
				clip.MediaURL = *upd.MediaURL
			}
			clampFades(&clip)
			a.tracks[kind][i] = clip
			return clip, nil
		}
	}
	return models.AudioClip{}, fmt.Errorf("audio clip %s: %w", id, ErrAudioClipNotFound)
}

// GainAt returns the clip's effective gain at global time t: volume/100,
// linearly ramped from zero over the first fadeIn seconds and back to zero
// over the last fadeOut seconds of the clip's effective span. Outside
// [startTime, startTime+effectiveDuration] the clip contributes nothing.
func GainAt(clip models.AudioClip, t float64) float64 {
	local := t - clip.StartTime
	d := clip.EffectiveDuration()
	if local < 0 || local > d || d <= 0 {
		return 0
	}
	gain := clip.Volume / 100.0
	if clip.FadeIn > 0 && local < clip.FadeIn {
		gain *= local / clip.FadeIn
	}
	if clip.FadeOut > 0 && local > d-clip.FadeOut {
		gain *= (d - local) / clip.FadeOut
	}
	return gain
}

// PlaceVoiceover stores a voiceover clip for a scene, replacing any
// existing voiceover for that scene. Its start time is taken from the
// current clip sequence via VoiceoverOffset; later timeline edits re-sync
// placement through SyncVoiceoverPlacement. The replacement is validated
// before the existing voiceover is removed, so a rejected clip leaves the
// track unchanged.
func (a *AudioTracks) PlaceVoiceover(clip models.AudioClip, sceneNumber int, timelineClips []models.Clip) (models.AudioClip, error) {
	if err := validateTrim(clip.Duration, clip.TrimStart, clip.TrimEnd); err != nil {
		return models.AudioClip{}, err
	}
	clip.Type = models.AudioTrackVoiceover
	clip.SceneNumber = &sceneNumber
	clip.StartTime = VoiceoverOffset(timelineClips, sceneNumber)

	// At most one voiceover per scene.
	kept := a.tracks[models.AudioTrackVoiceover][:0]
	for _, existing := range a.tracks[models.AudioTrackVoiceover] {
		if existing.SceneNumber == nil || *existing.SceneNumber != sceneNumber {
			kept = append(kept, existing)
		}
	}
	a.tracks[models.AudioTrackVoiceover] = kept

	return a.AddClip(clip)
}

// SyncVoiceoverPlacement recomputes the start time of every scene-bound
// voiceover from the current clip sequence. Called after each timeline
// mutation, so voiceover placement follows reorders and retrims instead of
// drifting against a stale snapshot.
func (a *AudioTracks) SyncVoiceoverPlacement(timelineClips []models.Clip) {
	vos := a.tracks[models.AudioTrackVoiceover]
	for i := range vos {
		if vos[i].SceneNumber == nil {
			continue
		}
		vos[i].StartTime = VoiceoverOffset(timelineClips, *vos[i].SceneNumber)
	}
}

// VoiceoverOffset is the global start time for scene N's voiceover: the
// sum of effective durations of every timeline clip belonging to an
// earlier scene.
func VoiceoverOffset(timelineClips []models.Clip, sceneNumber int) float64 {
	offset := 0.0
	for _, c := range timelineClips {
		if c.SceneNumber >= sceneNumber {
			continue
		}
		if d := c.EffectiveDuration(); d > 0 {
			offset += d
		}
	}
	return offset
}

// Restore replaces all three tracks wholesale from a snapshot. Clips with
// an unknown track kind are dropped.
func (a *AudioTracks) Restore(clips []models.AudioClip) {
	for _, kind := range models.AudioTrackKinds() {
		a.tracks[kind] = nil
	}
	for _, c := range clips {
		if !c.Type.Valid() {
			continue
		}
		a.tracks[c.Type] = append(a.tracks[c.Type], c)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clampFades scales both fades down proportionally when their sum exceeds
// the clip's effective duration. Soft constraint: clamp, never reject.
func clampFades(clip *models.AudioClip) {
	if clip.FadeIn < 0 {
		clip.FadeIn = 0
	}
	if clip.FadeOut < 0 {
		clip.FadeOut = 0
	}
	d := clip.EffectiveDuration()
	sum := clip.FadeIn + clip.FadeOut
	if sum <= d || sum == 0 {
		return
	}
	scale := d / sum
	clip.FadeIn *= scale
	clip.FadeOut *= scale
}
