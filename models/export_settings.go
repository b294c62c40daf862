package models

// ExportResolution enumerates the supported output resolutions.
type ExportResolution string

const (
	Resolution720p  ExportResolution = "720p"
	Resolution1080p ExportResolution = "1080p"
	Resolution4K    ExportResolution = "4k"
)

// ExportFormat enumerates the supported container formats.
type ExportFormat string

const (
	FormatMP4  ExportFormat = "mp4"
	FormatWebM ExportFormat = "webm"
)

// ExportQuality enumerates the supported encode quality presets.
type ExportQuality string

const (
	QualityDraft    ExportQuality = "draft"
	QualityStandard ExportQuality = "standard"
	QualityHigh     ExportQuality = "high"
)

// ExportSettings describes the desired render output. It is validated at
// the request boundary with validator tags; the engine stores it as given.
type ExportSettings struct {
	Resolution      ExportResolution `json:"resolution" validate:"required,oneof=720p 1080p 4k"`
	Format          ExportFormat     `json:"format" validate:"required,oneof=mp4 webm"`
	Quality         ExportQuality    `json:"quality" validate:"required,oneof=draft standard high"`
	IncludeAudio    bool             `json:"include_audio"`
	IncludeCaptions bool             `json:"include_captions"`
	CaptionBurnIn   bool             `json:"caption_burn_in"`
}

// DefaultExportSettings returns the settings applied to a new project.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Resolution:      Resolution1080p,
		Format:          FormatMP4,
		Quality:         QualityStandard,
		IncludeAudio:    true,
		IncludeCaptions: true,
		CaptionBurnIn:   true,
	}
}
