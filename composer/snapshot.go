package composer

import (
	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// SessionSnapshot is the persisted form of a session: everything needed
// to restore editing state across browser sessions. Playback position,
// play state and selection are intentionally absent; a restored session
// always comes back stopped at t=0 with nothing selected.
type SessionSnapshot struct {
	ProjectID    uuid.UUID                      `json:"project_id"`
	Clips        []models.Clip                  `json:"clips"`
	Transitions  []models.Transition            `json:"transitions"`
	AudioClips   []models.AudioClip             `json:"audio_clips"`
	Captions     []models.Caption               `json:"captions"`
	CaptionStyle models.CaptionStyle            `json:"caption_style"`
	Settings     models.ExportSettings          `json:"settings"`
	Candidates   map[int][]models.CandidateClip `json:"candidates,omitempty"`
	Scenes       []models.SceneMetadata         `json:"scenes,omitempty"`
	Zoom         float64                        `json:"zoom"`
	AspectRatio  string                         `json:"aspect_ratio"`
}

// Snapshot captures the current session state for persistence.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SessionSnapshot{
		ProjectID:    s.ProjectID,
		Clips:        s.timeline.Clips(),
		Transitions:  s.timeline.Transitions(),
		AudioClips:   s.audio.All(),
		Captions:     s.captions.Captions(),
		CaptionStyle: s.captions.Style(),
		Settings:     s.settings,
		Zoom:         s.zoom,
		AspectRatio:  s.aspectRatio,
	}
	snap.Candidates = make(map[int][]models.CandidateClip, len(s.candidates))
	for scene, list := range s.candidates {
		cp := make([]models.CandidateClip, len(list))
		copy(cp, list)
		snap.Candidates[scene] = cp
	}
	for _, meta := range s.scenes {
		snap.Scenes = append(snap.Scenes, meta)
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot. Transitions whose
// anchor clip is gone are dropped, voiceover placement is re-synced, and
// playback starts stopped at zero.
func RestoreSession(snap SessionSnapshot) *Session {
	s := NewSession(snap.ProjectID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.Restore(snap.Clips, snap.Transitions)
	s.audio.Restore(snap.AudioClips)
	s.captions.Restore(snap.Captions, snap.CaptionStyle)
	s.settings = snap.Settings
	if s.settings.Resolution == "" {
		s.settings = models.DefaultExportSettings()
	}
	s.candidates = make(map[int][]models.CandidateClip, len(snap.Candidates))
	for scene, list := range snap.Candidates {
		cp := make([]models.CandidateClip, len(list))
		copy(cp, list)
		s.candidates[scene] = cp
	}
	s.scenes = make(map[int]models.SceneMetadata, len(snap.Scenes))
	for _, meta := range snap.Scenes {
		s.scenes[meta.SceneNumber] = meta
	}
	if snap.Zoom > 0 {
		s.zoom = snap.Zoom
	}
	if snap.AspectRatio != "" {
		s.aspectRatio = snap.AspectRatio
	}
	s.syncAudioLocked()
	return s
}
