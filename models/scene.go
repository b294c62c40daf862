package models

// SceneMetadata carries the per-scene script data produced by the
// out-of-scope generation pipeline. Dialogue feeds caption auto-layout;
// the rest is display/context only.
type SceneMetadata struct {
	SceneNumber     int     `json:"scene_number"`
	Dialogue        string  `json:"dialogue,omitempty"`
	Action          string  `json:"action,omitempty"`
	SceneType       string  `json:"scene_type,omitempty"`
	NominalDuration float64 `json:"nominal_duration,omitempty"`
}

// CandidateClip is one generated clip candidate for a scene, as delivered
// by the generation pipeline. Only the first candidate per scene seeds the
// initial timeline; the rest stay available for swapping.
type CandidateClip struct {
	SceneNumber   int     `json:"scene_number"`
	VariantNumber int     `json:"variant_number"`
	MediaURL      string  `json:"media_url,omitempty"`
	Duration      float64 `json:"duration"`
}
