package models

// CaptionPosition places captions vertically in the frame.
type CaptionPosition string

const (
	CaptionPositionTop    CaptionPosition = "top"
	CaptionPositionCenter CaptionPosition = "center"
	CaptionPositionBottom CaptionPosition = "bottom"
)

// Valid reports whether p is a known position.
func (p CaptionPosition) Valid() bool {
	switch p {
	case CaptionPositionTop, CaptionPositionCenter, CaptionPositionBottom:
		return true
	}
	return false
}

// CaptionAlignment is the horizontal text alignment.
type CaptionAlignment string

const (
	CaptionAlignLeft   CaptionAlignment = "left"
	CaptionAlignCenter CaptionAlignment = "center"
	CaptionAlignRight  CaptionAlignment = "right"
)

// Valid reports whether a is a known alignment.
func (a CaptionAlignment) Valid() bool {
	switch a {
	case CaptionAlignLeft, CaptionAlignCenter, CaptionAlignRight:
		return true
	}
	return false
}

// CaptionAnimation is the entry animation applied to each caption.
type CaptionAnimation string

const (
	CaptionAnimationNone   CaptionAnimation = "none"
	CaptionAnimationFadeIn CaptionAnimation = "fade-in"
	CaptionAnimationPopIn  CaptionAnimation = "pop-in"
	CaptionAnimationSlide  CaptionAnimation = "slide-up"
)

// Valid reports whether a is a known animation.
func (a CaptionAnimation) Valid() bool {
	switch a {
	case CaptionAnimationNone, CaptionAnimationFadeIn, CaptionAnimationPopIn, CaptionAnimationSlide:
		return true
	}
	return false
}

// CaptionStyle is the single shared visual style applied to every caption
// at once. There is exactly one instance per session.
type CaptionStyle struct {
	FontFamily        string           `json:"font_family"`
	FontSize          int              `json:"font_size"`
	FontWeight        int              `json:"font_weight"`
	TextColor         string           `json:"text_color"`
	BackgroundColor   string           `json:"background_color"`
	BackgroundOpacity float64          `json:"background_opacity"`
	Position          CaptionPosition  `json:"position"`
	Alignment         CaptionAlignment `json:"alignment"`
	Animation         CaptionAnimation `json:"animation"`
	OutlineEnabled    bool             `json:"outline_enabled"`
	OutlineColor      string           `json:"outline_color,omitempty"`
}

// DefaultCaptionStyle returns the style applied before the user edits it.
func DefaultCaptionStyle() CaptionStyle {
	return CaptionStyle{
		FontFamily:        "Inter",
		FontSize:          32,
		FontWeight:        700,
		TextColor:         "#FFFFFF",
		BackgroundColor:   "#000000",
		BackgroundOpacity: 0.5,
		Position:          CaptionPositionBottom,
		Alignment:         CaptionAlignCenter,
		Animation:         CaptionAnimationNone,
		OutlineEnabled:    false,
	}
}
