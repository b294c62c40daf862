package composer

import (
	"sync"

	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// Session is the explicit state container for one project's editing
// state: timeline, transitions, audio tracks, captions, export settings,
// scene metadata, candidate clips and playback. There are no ambient
// globals; every mutation goes through a named command method, and one
// mutex serializes commands because the HTTP surface is concurrent. The
// engine itself stays logically single-threaded: one lock, program order.
type Session struct {
	mu sync.Mutex

	ProjectID uuid.UUID

	timeline *Timeline
	audio    *AudioTracks
	captions *CaptionTrack
	playback *PlaybackController

	settings    models.ExportSettings
	candidates  map[int][]models.CandidateClip
	scenes      map[int]models.SceneMetadata
	zoom        float64
	aspectRatio string
}

// NewSession returns an empty session for a project, stopped at t=0 with
// default style and export settings.
func NewSession(projectID uuid.UUID) *Session {
	s := &Session{
		ProjectID:   projectID,
		timeline:    NewTimeline(),
		audio:       NewAudioTracks(),
		captions:    NewCaptionTrack(),
		settings:    models.DefaultExportSettings(),
		candidates:  map[int][]models.CandidateClip{},
		scenes:      map[int]models.SceneMetadata{},
		zoom:        1.0,
		aspectRatio: "16:9",
	}
	s.playback = NewPlaybackController(&s.mu, s.totalDurationLocked)
	return s
}

// totalDurationLocked reads the live total duration. Callers hold s.mu.
func (s *Session) totalDurationLocked() float64 {
	return TotalDuration(s.timeline.clips, s.timeline.transitions)
}

// syncAudioLocked recomputes voiceover placement from the current clip
// order. Called after every timeline mutation, with s.mu held.
func (s *Session) syncAudioLocked() {
	s.audio.SyncVoiceoverPlacement(s.timeline.clips)
}

// Intake seeds the session from the generation pipeline's output: the
// scene-to-candidate-clips map and the per-scene metadata. Re-running the
// wizard replaces the timeline wholesale; audio and captions are kept and
// re-synchronized.
func (s *Session) Intake(candidates map[int][]models.CandidateClip, scenes []models.SceneMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = make(map[int][]models.CandidateClip, len(candidates))
	for scene, list := range candidates {
		cp := make([]models.CandidateClip, len(list))
		copy(cp, list)
		s.candidates[scene] = cp
	}
	s.scenes = make(map[int]models.SceneMetadata, len(scenes))
	for _, meta := range scenes {
		s.scenes[meta.SceneNumber] = meta
	}
	s.timeline.Restore(SeedClips(candidates), nil)
	s.syncAudioLocked()
}

// --- Timeline commands ---

// AppendClip adds a clip at the end of the sequence.
func (s *Session) AppendClip(clip models.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.Append(clip); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// RemoveClip deletes a clip, cascading to anchored transitions and
// clearing selection referencing it.
func (s *Session) RemoveClip(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.Remove(id); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// ReorderClips rearranges the sequence to match the given id list.
func (s *Session) ReorderClips(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.Reorder(ids); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// SetTrim updates a clip's trims, validated at the boundary.
func (s *Session) SetTrim(id uuid.UUID, trimStart, trimEnd float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.SetTrim(id, trimStart, trimEnd); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// UpdateClip applies a partial trim/crop edit to one clip under a single
// lock hold, so concurrent edits cannot interleave between read and write.
func (s *Session) UpdateClip(id uuid.UUID, upd ClipUpdate) (models.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip, err := s.timeline.Update(id, upd)
	if err != nil {
		return models.Clip{}, err
	}
	s.syncAudioLocked()
	return clip, nil
}

// ReplaceClip swaps a clip for a new one, preserving its position.
func (s *Session) ReplaceClip(oldID uuid.UUID, clip models.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.Replace(oldID, clip); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// SetCrop updates a clip's crop rectangle; nil clears it.
func (s *Session) SetCrop(id uuid.UUID, crop *models.Crop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.SetCrop(id, crop)
}

// SetClipMedia attaches a generated media reference to a clip.
func (s *Session) SetClipMedia(id uuid.UUID, mediaURL string, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timeline.SetMedia(id, mediaURL, duration); err != nil {
		return err
	}
	s.syncAudioLocked()
	return nil
}

// SelectClip marks a clip as selected in the editor; uuid.Nil clears it.
func (s *Session) SelectClip(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Select(id)
}

// SetTransition upserts the transition anchored after a clip.
func (s *Session) SetTransition(afterClipID uuid.UUID, kind models.TransitionKind, duration float64) (models.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.SetTransition(afterClipID, kind, duration)
}

// RemoveTransition deletes a transition by id.
func (s *Session) RemoveTransition(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.RemoveTransition(id)
}

// --- Audio commands ---

// AddAudioClip stores a clip on the track named by its own type.
func (s *Session) AddAudioClip(clip models.AudioClip) (models.AudioClip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.AddClip(clip)
}

// RemoveAudioClip deletes an audio clip, whichever track it lives on.
func (s *Session) RemoveAudioClip(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.RemoveClip(id)
}

// UpdateAudioClip applies a partial update to an audio clip.
func (s *Session) UpdateAudioClip(id uuid.UUID, upd AudioClipUpdate) (models.AudioClip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.UpdateClip(id, upd)
}

// PlaceVoiceover stores a generated voiceover for a scene, replacing any
// previous one and positioning it from the current clip order.
func (s *Session) PlaceVoiceover(clip models.AudioClip, sceneNumber int) (models.AudioClip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.PlaceVoiceover(clip, sceneNumber, s.timeline.clips)
}

// --- Caption commands ---

// AutoGenerateCaptions rebuilds the caption track from the current clip
// sequence and the stored per-scene dialogue.
func (s *Session) AutoGenerateCaptions() []models.Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	dialogue := make(map[int]string, len(s.scenes))
	for scene, meta := range s.scenes {
		dialogue[scene] = meta.Dialogue
	}
	return s.captions.AutoGenerate(s.timeline.clips, dialogue)
}

// AddManualCaption appends a two-second caption after the current last.
func (s *Session) AddManualCaption(text string, sceneNumber int) models.Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.AddManual(text, sceneNumber)
}

// UpdateCaption applies a partial edit to one caption.
func (s *Session) UpdateCaption(id uuid.UUID, upd CaptionUpdate) (models.Caption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Update(id, upd)
}

// RemoveCaption deletes one caption.
func (s *Session) RemoveCaption(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Remove(id)
}

// SetCaptionStyle replaces the shared caption style.
func (s *Session) SetCaptionStyle(style models.CaptionStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captions.SetStyle(style)
}

// --- Playback commands ---

// Play starts or resumes the tick loop.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback.Play()
}

// Pause freezes the playhead without resetting it.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback.Pause()
}

// Stop halts playback and resets the playhead to zero.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback.Stop()
}

// Seek moves the playhead, clamped to the timeline bounds. The playback
// state is unchanged.
func (s *Session) Seek(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playback.Seek(t)
}

// PlaybackStatus is the full preview state at the current playhead: the
// resolved active clip, any transition entry window in progress, and the
// captions to render. Placeholder is set when the active clip has no
// media reference; the preview shows a scene-numbered placeholder frame
// instead of failing.
type PlaybackStatus struct {
	State          PlaybackState     `json:"state"`
	Position       float64           `json:"position"`
	TotalDuration  float64           `json:"total_duration"`
	ActiveClip     *ActiveClip       `json:"active_clip,omitempty"`
	Transition     *TransitionWindow `json:"transition,omitempty"`
	ActiveCaptions []models.Caption  `json:"active_captions,omitempty"`
	Placeholder    bool              `json:"placeholder"`
}

// Playback resolves the current playhead against live state.
func (s *Session) Playback() PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := PlaybackStatus{
		State:         s.playback.State(),
		Position:      s.playback.Position(),
		TotalDuration: s.totalDurationLocked(),
	}
	if active, ok := ResolveActiveClip(s.timeline.clips, status.Position); ok {
		status.ActiveClip = &active
		status.Placeholder = !active.Clip.HasMedia()
	}
	if window, ok := ResolveTransitionWindow(s.timeline.clips, s.timeline.transitions, status.Position); ok {
		status.Transition = &window
	}
	status.ActiveCaptions = s.captions.ActiveAt(status.Position)
	return status
}

// --- Export and views ---

// SetExportSettings stores validated export settings.
func (s *Session) SetExportSettings(settings models.ExportSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// ExportSettings returns the current export settings.
func (s *Session) ExportSettings() models.ExportSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// BuildRenderPayload snapshots the current model into the composition
// description handed to the external render service.
func (s *Session) BuildRenderPayload() models.RenderPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RenderPayload{
		ProjectID:    s.ProjectID,
		Clips:        s.timeline.Clips(),
		Transitions:  s.timeline.Transitions(),
		AudioClips:   s.audio.All(),
		Captions:     s.captions.Captions(),
		CaptionStyle: s.captions.Style(),
		Settings:     s.settings,
	}
}

// Clips returns the clip sequence in timeline order.
func (s *Session) Clips() []models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Clips()
}

// Transitions returns all transitions.
func (s *Session) Transitions() []models.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Transitions()
}

// AudioClips returns every audio clip across the three tracks.
func (s *Session) AudioClips() []models.AudioClip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.All()
}

// AudioTrack returns the clips on one track.
func (s *Session) AudioTrack(kind models.AudioTrackKind) []models.AudioClip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.Track(kind)
}

// Captions returns all caption entries.
func (s *Session) Captions() []models.Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Captions()
}

// CaptionStyle returns the shared caption style.
func (s *Session) CaptionStyle() models.CaptionStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captions.Style()
}

// TotalDuration is the playable length of the timeline: content duration
// minus active transitions, never negative.
func (s *Session) TotalDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalDurationLocked()
}

// Scenes returns the per-scene metadata keyed by scene number.
func (s *Session) Scenes() map[int]models.SceneMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]models.SceneMetadata, len(s.scenes))
	for k, v := range s.scenes {
		out[k] = v
	}
	return out
}

// Candidates returns the per-scene candidate clip lists.
func (s *Session) Candidates() map[int][]models.CandidateClip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int][]models.CandidateClip, len(s.candidates))
	for scene, list := range s.candidates {
		cp := make([]models.CandidateClip, len(list))
		copy(cp, list)
		out[scene] = cp
	}
	return out
}

// SetView stores the editor's zoom level and aspect ratio.
func (s *Session) SetView(zoom float64, aspectRatio string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if zoom > 0 {
		s.zoom = zoom
	}
	if aspectRatio != "" {
		s.aspectRatio = aspectRatio
	}
}

// View returns the editor's zoom level and aspect ratio.
func (s *Session) View() (zoom float64, aspectRatio string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom, s.aspectRatio
}
