package composer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/models"
)

func seededTimeline(t *testing.T, durations ...float64) *Timeline {
	t.Helper()
	tl := NewTimeline()
	for i, d := range durations {
		require.NoError(t, tl.Append(makeClip(i+1, d, 0, 0)))
	}
	return tl
}

func TestTimeline_AppendAssignsDenseOrder(t *testing.T) {
	tl := seededTimeline(t, 5, 6, 7)
	clips := tl.Clips()
	require.Len(t, clips, 3)
	for i, c := range clips {
		assert.Equal(t, i, c.Order)
	}
}

func TestTimeline_AppendRejectsInvalidTrim(t *testing.T) {
	tl := NewTimeline()
	err := tl.Append(makeClip(1, 4, 2, 2))
	assert.ErrorIs(t, err, ErrInvalidTrim)
	assert.Equal(t, 0, tl.Len())
}

func TestTimeline_RemoveRenumbersAndCascades(t *testing.T) {
	tl := seededTimeline(t, 5, 6, 7)
	clips := tl.Clips()

	// Anchor a transition to the middle clip, then remove that clip.
	_, err := tl.SetTransition(clips[1].ID, models.TransitionFade, 0.5)
	require.NoError(t, err)
	require.NoError(t, tl.Select(clips[1].ID))

	require.NoError(t, tl.Remove(clips[1].ID))

	remaining := tl.Clips()
	require.Len(t, remaining, 2)
	assert.Equal(t, clips[0].ID, remaining[0].ID)
	assert.Equal(t, clips[2].ID, remaining[1].ID)
	for i, c := range remaining {
		assert.Equal(t, i, c.Order)
	}

	// Cascade: no transition references the removed clip anymore.
	assert.Empty(t, tl.Transitions())
	// Selection referencing the removed clip is cleared.
	assert.Equal(t, uuid.Nil, tl.Selected())
}

func TestTimeline_RemoveUnknownClip(t *testing.T) {
	tl := seededTimeline(t, 5)
	err := tl.Remove(uuid.New())
	assert.ErrorIs(t, err, ErrClipNotFound)
	assert.Equal(t, 1, tl.Len())
}

func TestTimeline_Reorder(t *testing.T) {
	tl := seededTimeline(t, 5, 6, 7)
	clips := tl.Clips()

	require.NoError(t, tl.Reorder([]uuid.UUID{clips[2].ID, clips[0].ID, clips[1].ID}))

	got := tl.Clips()
	assert.Equal(t, clips[2].ID, got[0].ID)
	assert.Equal(t, clips[0].ID, got[1].ID)
	assert.Equal(t, clips[1].ID, got[2].ID)
	for i, c := range got {
		assert.Equal(t, i, c.Order)
	}
}

func TestTimeline_ReorderRejectsBadPermutations(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	assert.ErrorIs(t, tl.Reorder([]uuid.UUID{clips[0].ID}), ErrInvalidReorder)
	assert.ErrorIs(t, tl.Reorder([]uuid.UUID{clips[0].ID, uuid.New()}), ErrInvalidReorder)
	// Duplicated id: second occurrence no longer resolves.
	assert.ErrorIs(t, tl.Reorder([]uuid.UUID{clips[0].ID, clips[0].ID}), ErrInvalidReorder)
}

func TestTimeline_SetTrimValidatesAtBoundary(t *testing.T) {
	tl := seededTimeline(t, 10)
	id := tl.Clips()[0].ID

	require.NoError(t, tl.SetTrim(id, 2, 3))
	clip, err := tl.Clip(id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, clip.TrimStart)
	assert.Equal(t, 3.0, clip.TrimEnd)

	// Rejected trims leave the stored values untouched.
	assert.ErrorIs(t, tl.SetTrim(id, 5, 5), ErrInvalidTrim)
	assert.ErrorIs(t, tl.SetTrim(id, -1, 0), ErrInvalidTrim)
	clip, _ = tl.Clip(id)
	assert.Equal(t, 2.0, clip.TrimStart)
	assert.Equal(t, 3.0, clip.TrimEnd)
}

func TestTimeline_ReplacePreservesOrder(t *testing.T) {
	tl := seededTimeline(t, 5, 6, 7)
	clips := tl.Clips()

	replacement := makeClip(2, 9, 0, 0)
	replacement.VariantNumber = 3
	require.NoError(t, tl.Replace(clips[1].ID, replacement))

	got := tl.Clips()
	assert.Equal(t, replacement.ID, got[1].ID)
	assert.Equal(t, 1, got[1].Order)
	assert.Equal(t, 9.0, got[1].Duration)
}

func TestTimeline_ReplaceCarriesTransitionAnchor(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()
	_, err := tl.SetTransition(clips[0].ID, models.TransitionSlideLeft, 1)
	require.NoError(t, err)

	replacement := makeClip(1, 4, 0, 0)
	require.NoError(t, tl.Replace(clips[0].ID, replacement))

	tr, ok := tl.TransitionAfter(replacement.ID)
	require.True(t, ok)
	assert.Equal(t, models.TransitionSlideLeft, tr.Kind)
}

func TestTimeline_SetCrop(t *testing.T) {
	tl := seededTimeline(t, 5)
	id := tl.Clips()[0].ID

	require.NoError(t, tl.SetCrop(id, &models.Crop{X: 10, Y: 10, Width: 50, Height: 50}))
	clip, _ := tl.Clip(id)
	require.NotNil(t, clip.Crop)
	assert.Equal(t, 50.0, clip.Crop.Width)

	// Width below the 20% floor is rejected.
	assert.ErrorIs(t, tl.SetCrop(id, &models.Crop{X: 0, Y: 0, Width: 10, Height: 50}), ErrInvalidCrop)
	// Origin out of range is rejected.
	assert.ErrorIs(t, tl.SetCrop(id, &models.Crop{X: 120, Y: 0, Width: 50, Height: 50}), ErrInvalidCrop)

	// Nil clears the crop.
	require.NoError(t, tl.SetCrop(id, nil))
	clip, _ = tl.Clip(id)
	assert.Nil(t, clip.Crop)
}

func TestTimeline_UpdateAppliesTrimAndCropTogether(t *testing.T) {
	tl := seededTimeline(t, 10)
	id := tl.Clips()[0].ID

	trimStart, trimEnd := 1.0, 2.0
	clip, err := tl.Update(id, ClipUpdate{
		TrimStart: &trimStart,
		TrimEnd:   &trimEnd,
		Crop:      &models.Crop{X: 10, Y: 10, Width: 50, Height: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, clip.TrimStart)
	assert.Equal(t, 2.0, clip.TrimEnd)
	require.NotNil(t, clip.Crop)

	// ClearCrop wins over a crop in the same edit.
	clip, err = tl.Update(id, ClipUpdate{Crop: &models.Crop{Width: 50, Height: 50}, ClearCrop: true})
	require.NoError(t, err)
	assert.Nil(t, clip.Crop)
}

func TestTimeline_UpdateRejectsWithoutPartialApply(t *testing.T) {
	tl := seededTimeline(t, 10)
	id := tl.Clips()[0].ID
	require.NoError(t, tl.SetCrop(id, &models.Crop{X: 0, Y: 0, Width: 80, Height: 80}))

	// A valid trim paired with an invalid crop must not land either part.
	trimStart := 3.0
	_, err := tl.Update(id, ClipUpdate{
		TrimStart: &trimStart,
		Crop:      &models.Crop{X: 0, Y: 0, Width: 10, Height: 50},
	})
	assert.ErrorIs(t, err, ErrInvalidCrop)

	clip, _ := tl.Clip(id)
	assert.Equal(t, 0.0, clip.TrimStart)
	require.NotNil(t, clip.Crop)
	assert.Equal(t, 80.0, clip.Crop.Width)

	// An invalid trim leaves an otherwise valid crop unapplied too.
	overTrim := 11.0
	_, err = tl.Update(id, ClipUpdate{TrimStart: &overTrim, Crop: &models.Crop{X: 0, Y: 0, Width: 40, Height: 40}})
	assert.ErrorIs(t, err, ErrInvalidTrim)
	clip, _ = tl.Clip(id)
	assert.Equal(t, 80.0, clip.Crop.Width)
	assert.Equal(t, 0.0, clip.TrimStart)

	// Unknown clips are reported as such.
	_, err = tl.Update(uuid.New(), ClipUpdate{TrimStart: &trimStart})
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestTimeline_SetTransitionUpserts(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	first, err := tl.SetTransition(clips[0].ID, models.TransitionFade, 0.5)
	require.NoError(t, err)

	second, err := tl.SetTransition(clips[0].ID, models.TransitionZoomIn, 1.0)
	require.NoError(t, err)

	// Upsert: same anchor keeps a single transition, same identity.
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, tl.Transitions(), 1)
	assert.Equal(t, models.TransitionZoomIn, tl.Transitions()[0].Kind)
}

func TestTimeline_SetTransitionClampsDuration(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	tr, err := tl.SetTransition(clips[0].ID, models.TransitionFade, 0.05)
	require.NoError(t, err)
	assert.Equal(t, models.MinTransitionDuration, tr.Duration)

	tr, err = tl.SetTransition(clips[0].ID, models.TransitionFade, 10)
	require.NoError(t, err)
	assert.Equal(t, models.MaxTransitionDuration, tr.Duration)
}

func TestTimeline_SetTransitionRejectsLastClip(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	_, err := tl.SetTransition(clips[1].ID, models.TransitionFade, 0.5)
	assert.ErrorIs(t, err, ErrLastClipTransition)
}

func TestTimeline_SetTransitionNoneRemoves(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	_, err := tl.SetTransition(clips[0].ID, models.TransitionFade, 0.5)
	require.NoError(t, err)

	_, err = tl.SetTransition(clips[0].ID, models.TransitionNone, 0)
	require.NoError(t, err)
	assert.Empty(t, tl.Transitions())
}

func TestTimeline_SetTransitionRejectsUnknownKind(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()

	_, err := tl.SetTransition(clips[0].ID, models.TransitionKind("sparkle"), 0.5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTimeline_RemoveTransition(t *testing.T) {
	tl := seededTimeline(t, 5, 6)
	clips := tl.Clips()
	tr, err := tl.SetTransition(clips[0].ID, models.TransitionWipeRight, 0.5)
	require.NoError(t, err)

	require.NoError(t, tl.RemoveTransition(tr.ID))
	assert.Empty(t, tl.Transitions())
	assert.ErrorIs(t, tl.RemoveTransition(tr.ID), ErrTransitionNotFound)
}

func TestTimeline_RestoreSortsByOrderAndDropsDanglingTransitions(t *testing.T) {
	a := makeClip(1, 5, 0, 0)
	a.Order = 2
	b := makeClip(2, 6, 0, 0)
	b.Order = 0
	dangling := models.Transition{ID: uuid.New(), AfterClipID: uuid.New(), Kind: models.TransitionFade, Duration: 0.5}
	kept := models.Transition{ID: uuid.New(), AfterClipID: b.ID, Kind: models.TransitionFade, Duration: 0.5}

	tl := NewTimeline()
	tl.Restore([]models.Clip{a, b}, []models.Transition{dangling, kept})

	clips := tl.Clips()
	require.Len(t, clips, 2)
	assert.Equal(t, b.ID, clips[0].ID)
	assert.Equal(t, a.ID, clips[1].ID)
	assert.Equal(t, 0, clips[0].Order)
	assert.Equal(t, 1, clips[1].Order)

	require.Len(t, tl.Transitions(), 1)
	assert.Equal(t, kept.ID, tl.Transitions()[0].ID)
}
