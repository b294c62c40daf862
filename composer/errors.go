// Package composer implements the video composition and playback engine:
// the timeline model, time resolution, the playback state machine, the
// audio and caption track models and the export payload assembly. It
// computes what should be shown and heard when; decoding and encoding are
// delegated to the external render service.
package composer

import "errors"

var (
	// ErrInvalidTrim is returned when a trim would leave a clip with a
	// non-positive effective duration. The model state is left untouched.
	ErrInvalidTrim = errors.New("invalid trim: effective duration must stay positive")

	// ErrClipNotFound is returned when an operation references a clip id
	// that is not on the timeline.
	ErrClipNotFound = errors.New("clip not found")

	// ErrTransitionNotFound is returned when removing a transition that
	// does not exist.
	ErrTransitionNotFound = errors.New("transition not found")

	// ErrLastClipTransition is returned when setting a transition on the
	// last clip in sequence: nothing follows it to transition into.
	ErrLastClipTransition = errors.New("cannot set a transition after the last clip")

	// ErrInvalidTransition is returned for an unknown transition kind.
	ErrInvalidTransition = errors.New("invalid transition kind")

	// ErrInvalidCrop is returned when a crop rectangle is out of bounds.
	ErrInvalidCrop = errors.New("invalid crop rectangle")

	// ErrInvalidReorder is returned when a reorder list is not a
	// permutation of the current clip ids.
	ErrInvalidReorder = errors.New("reorder list must contain every clip id exactly once")

	// ErrAudioClipNotFound is returned when an audio operation references
	// an unknown audio clip id.
	ErrAudioClipNotFound = errors.New("audio clip not found")

	// ErrInvalidAudioTrack is returned for an unknown audio track kind.
	ErrInvalidAudioTrack = errors.New("invalid audio track kind")

	// ErrCaptionNotFound is returned when a caption operation references
	// an unknown caption id.
	ErrCaptionNotFound = errors.New("caption not found")

	// ErrInvalidCaptionWindow is returned when a caption's end time does
	// not come after its start time.
	ErrInvalidCaptionWindow = errors.New("caption end time must be after start time")
)
