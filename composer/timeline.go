package composer

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// Timeline holds the ordered clip sequence and the transitions anchored
// between adjacent clips. It is not safe for concurrent use on its own;
// the owning Session serializes access.
type Timeline struct {
	clips       []models.Clip
	transitions []models.Transition
	selected    uuid.UUID
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Clips returns a copy of the clip sequence in timeline order.
func (t *Timeline) Clips() []models.Clip {
	out := make([]models.Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// Transitions returns a copy of all transitions.
func (t *Timeline) Transitions() []models.Transition {
	out := make([]models.Transition, len(t.transitions))
	copy(out, t.transitions)
	return out
}

// Clip returns the clip with the given id.
func (t *Timeline) Clip(id uuid.UUID) (models.Clip, error) {
	i := t.indexOf(id)
	if i < 0 {
		return models.Clip{}, fmt.Errorf("clip %s: %w", id, ErrClipNotFound)
	}
	return t.clips[i], nil
}

// Len returns the number of clips on the timeline.
func (t *Timeline) Len() int {
	return len(t.clips)
}

// Append adds a clip to the end of the sequence. The clip's trims are
// validated; its order is assigned by position.
func (t *Timeline) Append(clip models.Clip) error {
	if err := validateTrim(clip.Duration, clip.TrimStart, clip.TrimEnd); err != nil {
		return err
	}
	if clip.Crop != nil {
		if err := validateCrop(*clip.Crop); err != nil {
			return err
		}
	}
	if clip.ID == uuid.Nil {
		clip.ID = uuid.New()
	}
	t.clips = append(t.clips, clip)
	t.renumber()
	return nil
}

// Remove deletes a clip, cascades to any transition anchored to it and
// clears selection state referencing it. Remaining orders are re-derived
// as a dense 0..n-1 sequence.
func (t *Timeline) Remove(id uuid.UUID) error {
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove clip %s: %w", id, ErrClipNotFound)
	}
	t.clips = append(t.clips[:i], t.clips[i+1:]...)
	t.dropTransitionsFor(id)
	if t.selected == id {
		t.selected = uuid.Nil
	}
	t.renumber()
	return nil
}

// Reorder rearranges the sequence to match ids, which must be a
// permutation of the current clip ids. Orders are re-derived densely.
func (t *Timeline) Reorder(ids []uuid.UUID) error {
	if len(ids) != len(t.clips) {
		return ErrInvalidReorder
	}
	byID := make(map[uuid.UUID]models.Clip, len(t.clips))
	for _, c := range t.clips {
		byID[c.ID] = c
	}
	next := make([]models.Clip, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return fmt.Errorf("reorder: clip %s: %w", id, ErrInvalidReorder)
		}
		delete(byID, id)
		next = append(next, c)
	}
	t.clips = next
	t.renumber()
	return nil
}

// SetTrim updates a clip's trims. The new values are validated against the
// clip's duration before anything is stored: a trim pair that would leave
// a non-positive effective duration is rejected with ErrInvalidTrim and
// the clip is left unchanged.
func (t *Timeline) SetTrim(id uuid.UUID, trimStart, trimEnd float64) error {
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("trim clip %s: %w", id, ErrClipNotFound)
	}
	if err := validateTrim(t.clips[i].Duration, trimStart, trimEnd); err != nil {
		return err
	}
	t.clips[i].TrimStart = trimStart
	t.clips[i].TrimEnd = trimEnd
	return nil
}

// ClipUpdate carries the updatable clip fields. Pointer fields distinguish
// omitted values from explicit zeroes; ClearCrop wins over Crop.
type ClipUpdate struct {
	TrimStart *float64     `json:"trim_start,omitempty"`
	TrimEnd   *float64     `json:"trim_end,omitempty"`
	Crop      *models.Crop `json:"crop,omitempty"`
	ClearCrop bool         `json:"clear_crop,omitempty"`
}

// Update applies a partial trim/crop edit to one clip. Both parts are
// validated before anything is stored, so a rejected edit leaves the clip
// untouched.
func (t *Timeline) Update(id uuid.UUID, upd ClipUpdate) (models.Clip, error) {
	i := t.indexOf(id)
	if i < 0 {
		return models.Clip{}, fmt.Errorf("update clip %s: %w", id, ErrClipNotFound)
	}
	clip := t.clips[i]
	trimStart, trimEnd := clip.TrimStart, clip.TrimEnd
	if upd.TrimStart != nil {
		trimStart = *upd.TrimStart
	}
	if upd.TrimEnd != nil {
		trimEnd = *upd.TrimEnd
	}
	if err := validateTrim(clip.Duration, trimStart, trimEnd); err != nil {
		return models.Clip{}, err
	}
	if !upd.ClearCrop && upd.Crop != nil {
		if err := validateCrop(*upd.Crop); err != nil {
			return models.Clip{}, err
		}
	}
	clip.TrimStart = trimStart
	clip.TrimEnd = trimEnd
	if upd.ClearCrop {
		clip.Crop = nil
	} else if upd.Crop != nil {
		crop := *upd.Crop
		clip.Crop = &crop
	}
	t.clips[i] = clip
	return clip, nil
}

// Replace swaps a clip for a new one, preserving the original position in
// the sequence. Transitions anchored to the old clip move to the new one.
func (t *Timeline) Replace(oldID uuid.UUID, clip models.Clip) error {
	i := t.indexOf(oldID)
	if i < 0 {
		return fmt.Errorf("replace clip %s: %w", oldID, ErrClipNotFound)
	}
	if err := validateTrim(clip.Duration, clip.TrimStart, clip.TrimEnd); err != nil {
		return err
	}
	if clip.ID == uuid.Nil {
		clip.ID = uuid.New()
	}
	clip.Order = t.clips[i].Order
	for j := range t.transitions {
		if t.transitions[j].AfterClipID == oldID {
			t.transitions[j].AfterClipID = clip.ID
		}
	}
	if t.selected == oldID {
		t.selected = clip.ID
	}
	t.clips[i] = clip
	t.renumber()
	return nil
}

// SetCrop updates a clip's crop rectangle. A nil crop clears it.
func (t *Timeline) SetCrop(id uuid.UUID, crop *models.Crop) error {
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("crop clip %s: %w", id, ErrClipNotFound)
	}
	if crop != nil {
		if err := validateCrop(*crop); err != nil {
			return err
		}
		c := *crop
		t.clips[i].Crop = &c
		return nil
	}
	t.clips[i].Crop = nil
	return nil
}

// SetMedia attaches a generated media reference to a clip, replacing any
// placeholder. Trims are reset when the source duration changes, since
// they were measured against the old media.
func (t *Timeline) SetMedia(id uuid.UUID, mediaURL string, duration float64) error {
	i := t.indexOf(id)
	if i < 0 {
		return fmt.Errorf("set media on clip %s: %w", id, ErrClipNotFound)
	}
	if duration > 0 && duration != t.clips[i].Duration {
		t.clips[i].Duration = duration
		t.clips[i].TrimStart = 0
		t.clips[i].TrimEnd = 0
	}
	t.clips[i].MediaURL = mediaURL
	return nil
}

// SetTransition upserts the transition anchored to afterClipID. Setting
// kind none removes any existing transition for that anchor. The anchor
// must exist and must not be the last clip in sequence. Duration is
// clamped into [MinTransitionDuration, MaxTransitionDuration].
func (t *Timeline) SetTransition(afterClipID uuid.UUID, kind models.TransitionKind, duration float64) (models.Transition, error) {
	if !kind.Valid() {
		return models.Transition{}, fmt.Errorf("transition kind %q: %w", kind, ErrInvalidTransition)
	}
	i := t.indexOf(afterClipID)
	if i < 0 {
		return models.Transition{}, fmt.Errorf("transition after clip %s: %w", afterClipID, ErrClipNotFound)
	}
	if kind == models.TransitionNone {
		t.dropTransitionsFor(afterClipID)
		return models.Transition{AfterClipID: afterClipID, Kind: models.TransitionNone}, nil
	}
	if i == len(t.clips)-1 {
		return models.Transition{}, ErrLastClipTransition
	}
	if duration < models.MinTransitionDuration {
		duration = models.MinTransitionDuration
	}
	if duration > models.MaxTransitionDuration {
		duration = models.MaxTransitionDuration
	}
	for j := range t.transitions {
		if t.transitions[j].AfterClipID == afterClipID {
			t.transitions[j].Kind = kind
			t.transitions[j].Duration = duration
			return t.transitions[j], nil
		}
	}
	tr := models.Transition{
		ID:          uuid.New(),
		AfterClipID: afterClipID,
		Kind:        kind,
		Duration:    duration,
	}
	t.transitions = append(t.transitions, tr)
	return tr, nil
}

// RemoveTransition deletes a transition by its own id.
func (t *Timeline) RemoveTransition(id uuid.UUID) error {
	for i := range t.transitions {
		if t.transitions[i].ID == id {
			t.transitions = append(t.transitions[:i], t.transitions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transition %s: %w", id, ErrTransitionNotFound)
}

// TransitionAfter returns the transition anchored to the given clip, if
// one exists.
func (t *Timeline) TransitionAfter(clipID uuid.UUID) (models.Transition, bool) {
	for _, tr := range t.transitions {
		if tr.AfterClipID == clipID {
			return tr, true
		}
	}
	return models.Transition{}, false
}

// Select marks a clip as selected in the editor. uuid.Nil clears it.
func (t *Timeline) Select(id uuid.UUID) error {
	if id != uuid.Nil && t.indexOf(id) < 0 {
		return fmt.Errorf("select clip %s: %w", id, ErrClipNotFound)
	}
	t.selected = id
	return nil
}

// Selected returns the currently selected clip id, uuid.Nil when nothing
// is selected.
func (t *Timeline) Selected() uuid.UUID {
	return t.selected
}

// Restore replaces the timeline contents wholesale from a snapshot. Clips
// are re-sorted by their stored order and renumbered densely; transitions
// whose anchor no longer exists are dropped.
func (t *Timeline) Restore(clips []models.Clip, transitions []models.Transition) {
	t.clips = make([]models.Clip, len(clips))
	copy(t.clips, clips)
	sort.SliceStable(t.clips, func(i, j int) bool {
		return t.clips[i].Order < t.clips[j].Order
	})
	t.renumber()

	t.transitions = t.transitions[:0]
	for _, tr := range transitions {
		if t.indexOf(tr.AfterClipID) >= 0 {
			t.transitions = append(t.transitions, tr)
		}
	}
	t.selected = uuid.Nil
}

func (t *Timeline) indexOf(id uuid.UUID) int {
	for i, c := range t.clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// renumber re-derives order as a dense 0..n-1 sequence matching the
// stored ordering. Every mutation ends here.
func (t *Timeline) renumber() {
	for i := range t.clips {
		t.clips[i].Order = i
	}
}

// dropTransitionsFor deletes any transition anchored to the given clip.
func (t *Timeline) dropTransitionsFor(clipID uuid.UUID) {
	kept := t.transitions[:0]
	for _, tr := range t.transitions {
		if tr.AfterClipID != clipID {
			kept = append(kept, tr)
		}
	}
	t.transitions = kept
}

func validateTrim(duration, trimStart, trimEnd float64) error {
	if trimStart < 0 || trimEnd < 0 {
		return fmt.Errorf("negative trim: %w", ErrInvalidTrim)
	}
	if trimStart+trimEnd >= duration {
		return fmt.Errorf("trim %.3f+%.3f against duration %.3f: %w", trimStart, trimEnd, duration, ErrInvalidTrim)
	}
	return nil
}

func validateCrop(c models.Crop) error {
	if c.X < 0 || c.X > 100 || c.Y < 0 || c.Y > 100 {
		return fmt.Errorf("crop origin (%.1f, %.1f): %w", c.X, c.Y, ErrInvalidCrop)
	}
	if c.Width < 20 || c.Width > 100 || c.Height < 20 || c.Height > 100 {
		return fmt.Errorf("crop size %.1fx%.1f: %w", c.Width, c.Height, ErrInvalidCrop)
	}
	return nil
}
