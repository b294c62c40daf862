package composer

import (
	"sort"

	"github.com/google/uuid"

	"videoforge/composer-api/models"
)

// SeedClips builds the initial clip sequence from the generation
// pipeline's scene-to-candidates map. Scenes are laid out in ascending
// scene number; only the first candidate per scene makes it onto the
// timeline, untrimmed and uncropped.
func SeedClips(candidates map[int][]models.CandidateClip) []models.Clip {
	scenes := make([]int, 0, len(candidates))
	for scene, list := range candidates {
		if len(list) == 0 {
			continue
		}
		scenes = append(scenes, scene)
	}
	sort.Ints(scenes)

	clips := make([]models.Clip, 0, len(scenes))
	for i, scene := range scenes {
		first := candidates[scene][0]
		clips = append(clips, models.Clip{
			ID:            uuid.New(),
			SceneNumber:   scene,
			VariantNumber: first.VariantNumber,
			MediaURL:      first.MediaURL,
			Duration:      first.Duration,
			Order:         i,
		})
	}
	return clips
}
