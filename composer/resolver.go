package composer

import (
	"videoforge/composer-api/models"
)

// ActiveClip is the result of resolving a global playhead position: the
// clip whose timeline window contains it, the clip's index in sequence,
// the local seek time within the clip's original media, and the global
// time at which the clip's window starts.
type ActiveClip struct {
	Clip        models.Clip `json:"clip"`
	Index       int         `json:"index"`
	LocalTime   float64     `json:"local_time"`
	WindowStart float64     `json:"window_start"`
}

// ResolveActiveClip maps a global time t to the active clip and its local
// seek time. Clips must be given in timeline order. The function is pure:
// identical inputs always yield identical output.
//
// Each clip with positive effective duration d occupies the half-open
// window [elapsed, elapsed+d); clips with non-positive effective duration
// are skipped entirely and contribute nothing. A t at or beyond the sum of
// all windows clamps to the last clip's final valid frame (freeze on last
// frame). An empty sequence resolves to no match and the caller renders an
// empty state.
func ResolveActiveClip(clips []models.Clip, t float64) (ActiveClip, bool) {
	if t < 0 {
		t = 0
	}
	elapsed := 0.0
	lastIdx := -1
	for i, c := range clips {
		d := c.EffectiveDuration()
		if d <= 0 {
			continue
		}
		if t >= elapsed && t < elapsed+d {
			return ActiveClip{
				Clip:        c,
				Index:       i,
				LocalTime:   c.TrimStart + (t - elapsed),
				WindowStart: elapsed,
			}, true
		}
		elapsed += d
		lastIdx = i
	}
	if lastIdx < 0 {
		return ActiveClip{}, false
	}
	last := clips[lastIdx]
	return ActiveClip{
		Clip:        last,
		Index:       lastIdx,
		LocalTime:   last.Duration - last.TrimEnd,
		WindowStart: elapsed - last.EffectiveDuration(),
	}, true
}

// ContentDuration is the sum of all positive effective clip durations:
// the extent of the resolvable window sequence.
func ContentDuration(clips []models.Clip) float64 {
	total := 0.0
	for _, c := range clips {
		if d := c.EffectiveDuration(); d > 0 {
			total += d
		}
	}
	return total
}

// TotalDuration is the content duration minus the duration of every
// active transition, clamped at zero if transitions over-subscribe. A
// transition is active when it is anchored to a clip that exists and is
// not last in sequence.
func TotalDuration(clips []models.Clip, transitions []models.Transition) float64 {
	total := ContentDuration(clips)
	for _, tr := range transitions {
		if tr.Kind == models.TransitionNone {
			continue
		}
		idx := -1
		for i, c := range clips {
			if c.ID == tr.AfterClipID {
				idx = i
				break
			}
		}
		if idx < 0 || idx == len(clips)-1 {
			continue
		}
		total -= tr.Duration
	}
	if total < 0 {
		return 0
	}
	return total
}

// TransitionWindow describes an entry effect in progress on the active
// clip. Progress runs from 0 at the window start to 1 at its end.
type TransitionWindow struct {
	Transition models.Transition `json:"transition"`
	Progress   float64           `json:"progress"`
}

// ResolveTransitionWindow reports whether the clip active at t is inside
// the entry window of a transition anchored to the previous clip in
// sequence. Transitions are evaluated only as entry effects on the clip
// being transitioned into; the exiting clip carries no separate effect.
func ResolveTransitionWindow(clips []models.Clip, transitions []models.Transition, t float64) (TransitionWindow, bool) {
	active, ok := ResolveActiveClip(clips, t)
	if !ok || active.Index == 0 {
		return TransitionWindow{}, false
	}
	prev := clips[active.Index-1]
	for _, tr := range transitions {
		if tr.AfterClipID != prev.ID {
			continue
		}
		if tr.Kind == models.TransitionNone {
			return TransitionWindow{}, false
		}
		sinceStart := t - active.WindowStart
		if sinceStart < tr.Duration {
			return TransitionWindow{
				Transition: tr,
				Progress:   sinceStart / tr.Duration,
			}, true
		}
		return TransitionWindow{}, false
	}
	return TransitionWindow{}, false
}
