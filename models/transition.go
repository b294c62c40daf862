package models

import (
	"github.com/google/uuid"
)

// TransitionKind enumerates the supported transition effects. The set is
// closed: anything not listed here is rejected at the model boundary.
type TransitionKind string

const (
	TransitionNone       TransitionKind = "none"
	TransitionFade       TransitionKind = "fade"
	TransitionCrossfade  TransitionKind = "crossfade"
	TransitionSlideLeft  TransitionKind = "slide-left"
	TransitionSlideRight TransitionKind = "slide-right"
	TransitionSlideUp    TransitionKind = "slide-up"
	TransitionSlideDown  TransitionKind = "slide-down"
	TransitionWipeLeft   TransitionKind = "wipe-left"
	TransitionWipeRight  TransitionKind = "wipe-right"
	TransitionZoomIn     TransitionKind = "zoom-in"
	TransitionZoomOut    TransitionKind = "zoom-out"
	TransitionDissolve   TransitionKind = "dissolve"
)

// Valid reports whether k is one of the known transition kinds.
func (k TransitionKind) Valid() bool {
	switch k {
	case TransitionNone, TransitionFade, TransitionCrossfade,
		TransitionSlideLeft, TransitionSlideRight, TransitionSlideUp, TransitionSlideDown,
		TransitionWipeLeft, TransitionWipeRight,
		TransitionZoomIn, TransitionZoomOut, TransitionDissolve:
		return true
	}
	return false
}

// Transition duration bounds in seconds, user-adjustable within this range.
const (
	MinTransitionDuration = 0.2
	MaxTransitionDuration = 2.0
)

// Transition is a visual effect rendered during the entry window of the
// clip that follows AfterClipID. At most one transition may be anchored to
// a given clip.
type Transition struct {
	ID          uuid.UUID      `json:"id"`
	AfterClipID uuid.UUID      `json:"after_clip_id"`
	Kind        TransitionKind `json:"kind"`
	Duration    float64        `json:"duration"`
}
