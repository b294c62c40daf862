package composer

import (
	"sync"
	"time"
)

// PlaybackState is the playback controller's state machine value.
type PlaybackState string

const (
	PlaybackStopped PlaybackState = "stopped"
	PlaybackPlaying PlaybackState = "playing"
	PlaybackPaused  PlaybackState = "paused"
)

// Timeline time advanced per tick, and the wall-clock interval between
// ticks. One tick is one discrete, cancellable unit of work.
const (
	TickQuantum  = 1.0 / 30.0
	TickInterval = time.Second / 30
)

// PlaybackController owns the authoritative global playhead and the
// {stopped, playing, paused} state machine. While playing, a single
// goroutine advances the playhead by TickQuantum per tick and re-resolves
// against live state; pausing or stopping cancels the pending tick
// deterministically, so no stale tick can move time after the state
// change.
//
// The controller shares the owning Session's mutex: command methods are
// called with the lock already held, and each tick takes the lock itself.
type PlaybackController struct {
	mu       *sync.Mutex
	state    PlaybackState
	position float64

	// durationFn reads the live total duration. It is called with mu held
	// and must not lock.
	durationFn func() float64

	quit chan struct{}
}

// NewPlaybackController returns a stopped controller sharing the given
// lock. durationFn must report the current total timeline duration.
func NewPlaybackController(mu *sync.Mutex, durationFn func() float64) *PlaybackController {
	return &PlaybackController{
		mu:         mu,
		state:      PlaybackStopped,
		durationFn: durationFn,
	}
}

// State returns the current state machine value.
func (p *PlaybackController) State() PlaybackState {
	return p.state
}

// Position returns the current global playhead in seconds.
func (p *PlaybackController) Position() float64 {
	return p.position
}

// Play transitions stopped or paused into playing and arms the tick loop.
// Playing an already-playing controller is a no-op.
func (p *PlaybackController) Play() {
	if p.state == PlaybackPlaying {
		return
	}
	p.state = PlaybackPlaying
	p.quit = make(chan struct{})
	go p.run(p.quit)
}

// Pause freezes time without resetting it. The pending tick is cancelled.
func (p *PlaybackController) Pause() {
	if p.state != PlaybackPlaying {
		return
	}
	p.state = PlaybackPaused
	p.cancelTicks()
}

// Stop cancels any tick loop and resets the playhead to zero.
func (p *PlaybackController) Stop() {
	p.state = PlaybackStopped
	p.position = 0
	p.cancelTicks()
}

// Seek sets the playhead directly, clamped to [0, totalDuration]. The
// play/pause/stopped state is unchanged.
func (p *PlaybackController) Seek(t float64) {
	total := p.durationFn()
	if t < 0 {
		t = 0
	}
	if t > total {
		t = total
	}
	p.position = t
}

func (p *PlaybackController) cancelTicks() {
	if p.quit != nil {
		close(p.quit)
		p.quit = nil
	}
}

// run is the cooperative tick loop. It exits when cancelled or when a
// tick reports that playback left the playing state.
func (p *PlaybackController) run(quit chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if !p.tick() {
				return
			}
		}
	}
}

// tick advances the playhead by one quantum under the session lock. It
// re-reads the live total duration every time, so edits made during
// playback are reflected on the next tick. Reaching the end transitions
// to stopped instead of advancing past it. Returns false when the loop
// should stop re-arming.
func (p *PlaybackController) tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PlaybackPlaying {
		return false
	}
	total := p.durationFn()
	next := p.position + TickQuantum
	if next >= total {
		// Auto-stop at end.
		p.state = PlaybackStopped
		p.position = 0
		p.quit = nil
		return false
	}
	p.position = next
	return true
}
