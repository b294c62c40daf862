package composer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/models"
)

func TestSeedClips_FirstCandidatePerSceneInSceneOrder(t *testing.T) {
	candidates := map[int][]models.CandidateClip{
		3: {
			{SceneNumber: 3, VariantNumber: 1, MediaURL: "https://cdn.example.com/s3v1.mp4", Duration: 5},
			{SceneNumber: 3, VariantNumber: 2, MediaURL: "https://cdn.example.com/s3v2.mp4", Duration: 6},
		},
		1: {
			{SceneNumber: 1, VariantNumber: 1, MediaURL: "https://cdn.example.com/s1v1.mp4", Duration: 4},
		},
		2: {}, // scene with no candidates contributes nothing
	}

	clips := SeedClips(candidates)
	require.Len(t, clips, 2)

	assert.Equal(t, 1, clips[0].SceneNumber)
	assert.Equal(t, "https://cdn.example.com/s1v1.mp4", clips[0].MediaURL)
	assert.Equal(t, 0, clips[0].Order)

	// Scene 3 seeds from its first candidate only.
	assert.Equal(t, 3, clips[1].SceneNumber)
	assert.Equal(t, 1, clips[1].VariantNumber)
	assert.Equal(t, "https://cdn.example.com/s3v1.mp4", clips[1].MediaURL)
	assert.Equal(t, 1, clips[1].Order)

	// Seeded clips start untrimmed.
	assert.Equal(t, 0.0, clips[1].TrimStart)
	assert.Equal(t, 0.0, clips[1].TrimEnd)
}

func TestSeedClips_Empty(t *testing.T) {
	assert.Empty(t, SeedClips(nil))
	assert.Empty(t, SeedClips(map[int][]models.CandidateClip{}))
}

func TestSessionIntake_SeedsTimelineAndMetadata(t *testing.T) {
	s := NewSession(uuid.New())
	candidates := map[int][]models.CandidateClip{
		1: {{SceneNumber: 1, VariantNumber: 1, Duration: 4}},
		2: {{SceneNumber: 2, VariantNumber: 1, Duration: 6}},
	}
	scenes := []models.SceneMetadata{
		{SceneNumber: 1, Dialogue: "opening line", SceneType: "hook"},
		{SceneNumber: 2, Dialogue: "closing line", SceneType: "cta"},
	}

	s.Intake(candidates, scenes)

	clips := s.Clips()
	require.Len(t, clips, 2)
	assert.InDelta(t, 10.0, s.TotalDuration(), 1e-9)
	assert.Equal(t, "opening line", s.Scenes()[1].Dialogue)
	assert.Len(t, s.Candidates()[2], 1)
}

func TestSessionIntake_ReplacesTimelineWholesale(t *testing.T) {
	s := NewSession(uuid.New())
	s.Intake(map[int][]models.CandidateClip{
		1: {{SceneNumber: 1, VariantNumber: 1, Duration: 4}},
	}, nil)
	require.Len(t, s.Clips(), 1)

	s.Intake(map[int][]models.CandidateClip{
		1: {{SceneNumber: 1, VariantNumber: 2, Duration: 7}},
		2: {{SceneNumber: 2, VariantNumber: 1, Duration: 3}},
	}, nil)

	clips := s.Clips()
	require.Len(t, clips, 2)
	assert.Equal(t, 2, clips[0].VariantNumber)
	assert.InDelta(t, 10.0, s.TotalDuration(), 1e-9)
}
