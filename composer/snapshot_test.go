package composer

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/models"
)

func populatedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(uuid.New())
	s.Intake(map[int][]models.CandidateClip{
		1: {{SceneNumber: 1, VariantNumber: 1, MediaURL: "https://cdn.example.com/s1.mp4", Duration: 8}},
		2: {{SceneNumber: 2, VariantNumber: 1, MediaURL: "https://cdn.example.com/s2.mp4", Duration: 6}},
	}, []models.SceneMetadata{
		{SceneNumber: 1, Dialogue: "one two three four five six seven"},
		{SceneNumber: 2, Dialogue: "closing words"},
	})

	clips := s.Clips()
	require.NoError(t, s.SetTrim(clips[0].ID, 1, 1))
	_, err := s.SetTransition(clips[0].ID, models.TransitionCrossfade, 0.8)
	require.NoError(t, err)

	_, err = s.PlaceVoiceover(makeAudioClip(models.AudioTrackVoiceover, 5, 90), 2)
	require.NoError(t, err)
	_, err = s.AddAudioClip(makeAudioClip(models.AudioTrackMusic, 20, 35))
	require.NoError(t, err)

	s.AutoGenerateCaptions()
	s.SetView(1.5, "9:16")
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := populatedSession(t)
	s.Seek(3)
	s.Play()
	defer s.Stop()
	require.NoError(t, s.SelectClip(s.Clips()[0].ID))

	snap := s.Snapshot()

	// Snapshots survive the JSON round trip used by the persistence layer.
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded SessionSnapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored := RestoreSession(decoded)

	assert.Equal(t, s.ProjectID, restored.ProjectID)
	assert.Equal(t, s.Clips(), restored.Clips())
	assert.Equal(t, s.Transitions(), restored.Transitions())
	assert.ElementsMatch(t, s.AudioClips(), restored.AudioClips())
	assert.Equal(t, s.Captions(), restored.Captions())
	assert.Equal(t, s.CaptionStyle(), restored.CaptionStyle())
	assert.Equal(t, s.ExportSettings(), restored.ExportSettings())
	assert.Equal(t, s.Scenes(), restored.Scenes())
	assert.Equal(t, s.Candidates(), restored.Candidates())

	zoom, aspect := restored.View()
	assert.Equal(t, 1.5, zoom)
	assert.Equal(t, "9:16", aspect)

	// Playback position, play state and selection are not persisted: a
	// restored session comes back stopped at zero with no selection.
	status := restored.Playback()
	assert.Equal(t, PlaybackStopped, status.State)
	assert.Equal(t, 0.0, status.Position)
}

func TestRestoreSession_DefaultsMissingSettings(t *testing.T) {
	restored := RestoreSession(SessionSnapshot{ProjectID: uuid.New()})
	assert.Equal(t, models.DefaultExportSettings(), restored.ExportSettings())
	assert.Empty(t, restored.Clips())
}

func TestBuildRenderPayload_SnapshotsCurrentModels(t *testing.T) {
	s := populatedSession(t)
	s.SetExportSettings(models.ExportSettings{
		Resolution:      models.Resolution4K,
		Format:          models.FormatWebM,
		Quality:         models.QualityHigh,
		IncludeAudio:    true,
		IncludeCaptions: false,
		CaptionBurnIn:   false,
	})

	payload := s.BuildRenderPayload()
	assert.Equal(t, s.ProjectID, payload.ProjectID)
	assert.Len(t, payload.Clips, 2)
	assert.Len(t, payload.Transitions, 1)
	assert.Len(t, payload.AudioClips, 2)
	assert.NotEmpty(t, payload.Captions)
	assert.Equal(t, models.Resolution4K, payload.Settings.Resolution)

	// The payload is a snapshot: later edits do not leak into it.
	require.NoError(t, s.RemoveClip(payload.Clips[0].ID))
	assert.Len(t, payload.Clips, 2)
}

func TestDurationConservation(t *testing.T) {
	s := populatedSession(t)

	clips := s.Clips()
	transitions := s.Transitions()
	sumEffective := 0.0
	for _, c := range clips {
		sumEffective += c.EffectiveDuration()
	}
	sumTransitions := 0.0
	for _, tr := range transitions {
		sumTransitions += tr.Duration
	}

	assert.InDelta(t, sumEffective-sumTransitions, s.TotalDuration(), 1e-9)
	assert.GreaterOrEqual(t, s.TotalDuration(), 0.0)
}

func TestSessionStore(t *testing.T) {
	store := NewStore()
	projectID := uuid.New()

	_, ok := store.Get(projectID)
	assert.False(t, ok)

	s := store.GetOrCreate(projectID)
	require.NotNil(t, s)
	again, ok := store.Get(projectID)
	require.True(t, ok)
	assert.Same(t, s, again)

	restored := NewSession(projectID)
	store.Put(restored)
	got, ok := store.Get(projectID)
	require.True(t, ok)
	assert.Same(t, restored, got)

	store.Delete(projectID)
	_, ok = store.Get(projectID)
	assert.False(t, ok)
}
