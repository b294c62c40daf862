package composer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// Words per auto-generated caption chunk, and the length of a manually
// inserted caption.
const (
	captionChunkWords     = 6
	manualCaptionDuration = 2.0
)

// CaptionTrack holds the ordered caption entries and the single shared
// visual style.
type CaptionTrack struct {
	captions []models.Caption
	style    models.CaptionStyle
}

// NewCaptionTrack returns an empty caption track with the default style.
func NewCaptionTrack() *CaptionTrack {
	return &CaptionTrack{style: models.DefaultCaptionStyle()}
}

// Captions returns a copy of all caption entries.
func (ct *CaptionTrack) Captions() []models.Caption {
	out := make([]models.Caption, len(ct.captions))
	copy(out, ct.captions)
	return out
}

// Style returns the shared caption style.
func (ct *CaptionTrack) Style() models.CaptionStyle {
	return ct.style
}

// SetStyle replaces the shared style for every caption at once.
func (ct *CaptionTrack) SetStyle(style models.CaptionStyle) {
	ct.style = style
}

// AutoGenerate rebuilds the caption track from the current clip sequence
// and per-scene dialogue. Walking clips in order: a clip whose scene has
// no dialogue advances the running time but produces nothing; a clip with
// dialogue has its text split into chunks of six words (the last chunk may
// be shorter), each chunk getting an equal share of the clip's effective
// duration. Within a scene this yields contiguous, non-overlapping
// captions in dialogue order.
func (ct *CaptionTrack) AutoGenerate(clips []models.Clip, dialogue map[int]string) []models.Caption {
	var generated []models.Caption
	currentTime := 0.0
	for _, clip := range clips {
		d := clip.EffectiveDuration()
		if d <= 0 {
			continue
		}
		text := strings.TrimSpace(dialogue[clip.SceneNumber])
		if text == "" {
			currentTime += d
			continue
		}
		chunks := chunkWords(text, captionChunkWords)
		chunkDuration := d / float64(len(chunks))
		for i, chunk := range chunks {
			generated = append(generated, models.Caption{
				ID:          uuid.New(),
				Text:        chunk,
				StartTime:   currentTime + float64(i)*chunkDuration,
				EndTime:     currentTime + float64(i+1)*chunkDuration,
				SceneNumber: clip.SceneNumber,
			})
		}
		currentTime += d
	}
	ct.captions = generated
	return ct.Captions()
}

// AddManual appends a new two-second caption starting at the end time of
// the current last caption, or at zero when none exist.
func (ct *CaptionTrack) AddManual(text string, sceneNumber int) models.Caption {
	start := 0.0
	if n := len(ct.captions); n > 0 {
		start = ct.captions[n-1].EndTime
	}
	entry := models.Caption{
		ID:          uuid.New(),
		Text:        text,
		StartTime:   start,
		EndTime:     start + manualCaptionDuration,
		SceneNumber: sceneNumber,
	}
	ct.captions = append(ct.captions, entry)
	return entry
}

// CaptionUpdate carries the editable caption fields. Pointer fields
// distinguish omitted values from explicit zeroes.
type CaptionUpdate struct {
	Text      *string  `json:"text,omitempty"`
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
}

// Update applies a partial edit to one caption. The resulting window must
// keep EndTime after StartTime; manually edited captions are allowed to
// overlap their neighbors.
func (ct *CaptionTrack) Update(id uuid.UUID, upd CaptionUpdate) (models.Caption, error) {
	for i := range ct.captions {
		if ct.captions[i].ID != id {
			continue
		}
		entry := ct.captions[i]
		if upd.Text != nil {
			entry.Text = *upd.Text
		}
		if upd.StartTime != nil {
			entry.StartTime = *upd.StartTime
		}
		if upd.EndTime != nil {
			entry.EndTime = *upd.EndTime
		}
		if entry.EndTime <= entry.StartTime {
			return models.Caption{}, fmt.Errorf("caption window [%.3f, %.3f]: %w", entry.StartTime, entry.EndTime, ErrInvalidCaptionWindow)
		}
		ct.captions[i] = entry
		return entry, nil
	}
	return models.Caption{}, fmt.Errorf("caption %s: %w", id, ErrCaptionNotFound)
}

// Remove deletes one caption by id.
func (ct *CaptionTrack) Remove(id uuid.UUID) error {
	for i := range ct.captions {
		if ct.captions[i].ID == id {
			ct.captions = append(ct.captions[:i], ct.captions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("caption %s: %w", id, ErrCaptionNotFound)
}

// ActiveAt returns every caption whose window contains the playhead.
// Containment is non-exclusive: overlapping captions all render, stacked.
func (ct *CaptionTrack) ActiveAt(t float64) []models.Caption {
	var active []models.Caption
	for _, entry := range ct.captions {
		if entry.ContainsTime(t) {
			active = append(active, entry)
		}
	}
	return active
}

// Restore replaces the caption list and style wholesale from a snapshot.
func (ct *CaptionTrack) Restore(captions []models.Caption, style models.CaptionStyle) {
	ct.captions = make([]models.Caption, len(captions))
	copy(ct.captions, captions)
	ct.style = style
}

// chunkWords splits text on whitespace into groups of at most size words.
func chunkWords(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
