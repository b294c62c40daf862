package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/models"
)

func TestAutoGenerate_TwelveWordsSplitIntoTwoChunks(t *testing.T) {
	// 12-word dialogue on a clip with effective duration 6s: two 6-word
	// captions of 3s each.
	clips := []models.Clip{makeClip(1, 8, 1, 1)}
	dialogue := map[int]string{1: "one two three four five six seven eight nine ten eleven twelve"}

	ct := NewCaptionTrack()
	captions := ct.AutoGenerate(clips, dialogue)

	require.Len(t, captions, 2)
	assert.Equal(t, "one two three four five six", captions[0].Text)
	assert.Equal(t, "seven eight nine ten eleven twelve", captions[1].Text)
	assert.InDelta(t, 0.0, captions[0].StartTime, 1e-9)
	assert.InDelta(t, 3.0, captions[0].EndTime, 1e-9)
	assert.InDelta(t, 3.0, captions[1].StartTime, 1e-9)
	assert.InDelta(t, 6.0, captions[1].EndTime, 1e-9)
}

func TestAutoGenerate_CoversSceneSpanWithoutOverlap(t *testing.T) {
	clips := []models.Clip{
		makeClip(1, 5, 0, 0),
		makeClip(2, 7, 1, 2), // effective 4
	}
	dialogue := map[int]string{
		1: strings.Repeat("word ", 14), // 14 words => chunks of 6,6,2
		2: "short line here",
	}

	ct := NewCaptionTrack()
	captions := ct.AutoGenerate(clips, dialogue)

	// Scene 1: three contiguous chunks covering [0,5).
	scene1 := captionsForScene(captions, 1)
	require.Len(t, scene1, 3)
	assert.InDelta(t, 0.0, scene1[0].StartTime, 1e-9)
	for i := 1; i < len(scene1); i++ {
		assert.InDelta(t, scene1[i-1].EndTime, scene1[i].StartTime, 1e-9)
	}
	assert.InDelta(t, 5.0, scene1[len(scene1)-1].EndTime, 1e-9)

	// Scene 2 starts where scene 1's clip span ends and covers its own
	// contributed span [5,9).
	scene2 := captionsForScene(captions, 2)
	require.Len(t, scene2, 1)
	assert.InDelta(t, 5.0, scene2[0].StartTime, 1e-9)
	assert.InDelta(t, 9.0, scene2[0].EndTime, 1e-9)
}

func TestAutoGenerate_SceneWithoutDialogueAdvancesTime(t *testing.T) {
	clips := []models.Clip{
		makeClip(1, 4, 0, 0), // no dialogue
		makeClip(2, 6, 0, 0),
	}
	dialogue := map[int]string{2: "hello there"}

	ct := NewCaptionTrack()
	captions := ct.AutoGenerate(clips, dialogue)

	require.Len(t, captions, 1)
	assert.Equal(t, 2, captions[0].SceneNumber)
	assert.InDelta(t, 4.0, captions[0].StartTime, 1e-9)
	assert.InDelta(t, 10.0, captions[0].EndTime, 1e-9)
}

func TestAutoGenerate_SkipsDegenerateClips(t *testing.T) {
	clips := []models.Clip{
		makeClip(1, 2, 1, 1), // effective 0: contributes nothing
		makeClip(2, 6, 0, 0),
	}
	dialogue := map[int]string{1: "never shown", 2: "visible text"}

	ct := NewCaptionTrack()
	captions := ct.AutoGenerate(clips, dialogue)

	require.Len(t, captions, 1)
	assert.Equal(t, 2, captions[0].SceneNumber)
	assert.InDelta(t, 0.0, captions[0].StartTime, 1e-9)
}

func TestAutoGenerate_ReplacesPreviousCaptions(t *testing.T) {
	clips := []models.Clip{makeClip(1, 6, 0, 0)}
	ct := NewCaptionTrack()
	ct.AutoGenerate(clips, map[int]string{1: "first pass"})
	ct.AutoGenerate(clips, map[int]string{1: "second pass"})

	captions := ct.Captions()
	require.Len(t, captions, 1)
	assert.Equal(t, "second pass", captions[0].Text)
}

func TestAddManual_AppendsAfterLastCaption(t *testing.T) {
	ct := NewCaptionTrack()

	first := ct.AddManual("first", 1)
	assert.InDelta(t, 0.0, first.StartTime, 1e-9)
	assert.InDelta(t, 2.0, first.EndTime, 1e-9)

	second := ct.AddManual("second", 1)
	assert.InDelta(t, 2.0, second.StartTime, 1e-9)
	assert.InDelta(t, 4.0, second.EndTime, 1e-9)
}

func TestCaptionUpdate(t *testing.T) {
	ct := NewCaptionTrack()
	entry := ct.AddManual("original", 1)

	text := "edited"
	end := 5.0
	updated, err := ct.Update(entry.ID, CaptionUpdate{Text: &text, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, 5.0, updated.EndTime)

	// A window that closes before it opens is rejected.
	badEnd := -1.0
	_, err = ct.Update(entry.ID, CaptionUpdate{EndTime: &badEnd})
	assert.ErrorIs(t, err, ErrInvalidCaptionWindow)
}

func TestCaptionRemove(t *testing.T) {
	ct := NewCaptionTrack()
	entry := ct.AddManual("text", 1)

	require.NoError(t, ct.Remove(entry.ID))
	assert.Empty(t, ct.Captions())
	assert.ErrorIs(t, ct.Remove(entry.ID), ErrCaptionNotFound)
}

func TestActiveAt_NonExclusiveContainment(t *testing.T) {
	ct := NewCaptionTrack()
	a := ct.AddManual("a", 1) // [0,2]
	b := ct.AddManual("b", 1) // [2,4]

	// Overlap b backwards over a via manual edit.
	start := 1.0
	_, err := ct.Update(b.ID, CaptionUpdate{StartTime: &start})
	require.NoError(t, err)

	active := ct.ActiveAt(1.5)
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, b.ID, active[1].ID)

	// Boundary times are inclusive on both ends.
	assert.Len(t, ct.ActiveAt(0), 1)
	assert.Len(t, ct.ActiveAt(4.0), 1)
	assert.Empty(t, ct.ActiveAt(10))
}

func TestChunkWords(t *testing.T) {
	assert.Nil(t, chunkWords("", 6))
	assert.Equal(t, []string{"a b"}, chunkWords("  a   b  ", 6))
	assert.Equal(t, []string{"a b c", "d e"}, chunkWords("a b c d e", 3))
}

func captionsForScene(captions []models.Caption, scene int) []models.Caption {
	var out []models.Caption
	for _, c := range captions {
		if c.SceneNumber == scene {
			out = append(out, c)
		}
	}
	return out
}
