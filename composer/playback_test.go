package composer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videoforge/composer-api/models"
)

func sessionWithClips(t *testing.T, durations ...float64) *Session {
	t.Helper()
	s := NewSession(uuid.New())
	for i, d := range durations {
		require.NoError(t, s.AppendClip(makeClip(i+1, d, 0, 0)))
	}
	return s
}

func TestPlayback_StateMachineTransitions(t *testing.T) {
	s := sessionWithClips(t, 10)
	defer s.Stop()

	assert.Equal(t, PlaybackStopped, s.Playback().State)

	s.Play()
	assert.Equal(t, PlaybackPlaying, s.Playback().State)

	s.Pause()
	assert.Equal(t, PlaybackPaused, s.Playback().State)

	s.Play()
	assert.Equal(t, PlaybackPlaying, s.Playback().State)

	s.Stop()
	status := s.Playback()
	assert.Equal(t, PlaybackStopped, status.State)
	assert.Equal(t, 0.0, status.Position)
}

func TestPlayback_PauseKeepsPosition(t *testing.T) {
	s := sessionWithClips(t, 10)
	defer s.Stop()

	s.Seek(4)
	s.Play()
	s.Pause()
	pos := s.Playback().Position
	assert.GreaterOrEqual(t, pos, 4.0)

	// Paused time is frozen: no stale tick may advance it.
	time.Sleep(3 * TickInterval)
	assert.Equal(t, pos, s.Playback().Position)
}

func TestPlayback_SeekClampsWithoutStateChange(t *testing.T) {
	s := sessionWithClips(t, 10, 6)

	s.Seek(-5)
	assert.Equal(t, 0.0, s.Playback().Position)

	s.Seek(9999)
	assert.Equal(t, 16.0, s.Playback().Position)
	assert.Equal(t, PlaybackStopped, s.Playback().State)

	s.Seek(3)
	s.Play()
	s.Seek(12)
	status := s.Playback()
	assert.Equal(t, PlaybackPlaying, status.State)
	assert.InDelta(t, 12.0, status.Position, 2*TickQuantum)
	s.Stop()
}

func TestPlayback_TickAdvancesOneQuantum(t *testing.T) {
	s := sessionWithClips(t, 10)
	// Drive the state machine directly: playing without the armed loop.
	s.mu.Lock()
	s.playback.state = PlaybackPlaying
	s.mu.Unlock()

	require.True(t, s.playback.tick())
	assert.InDelta(t, TickQuantum, s.Playback().Position, 1e-9)
	require.True(t, s.playback.tick())
	assert.InDelta(t, 2*TickQuantum, s.Playback().Position, 1e-9)
}

func TestPlayback_AutoStopAtEnd(t *testing.T) {
	s := sessionWithClips(t, 1)
	s.mu.Lock()
	s.playback.state = PlaybackPlaying
	s.playback.position = 1.0 - TickQuantum/2
	s.mu.Unlock()

	// The advancing tick would cross the end: stop instead.
	assert.False(t, s.playback.tick())
	status := s.Playback()
	assert.Equal(t, PlaybackStopped, status.State)
	assert.Equal(t, 0.0, status.Position)
}

func TestPlayback_TickAfterPauseIsNoOp(t *testing.T) {
	s := sessionWithClips(t, 10)
	s.Seek(2)
	s.mu.Lock()
	s.playback.state = PlaybackPaused
	s.mu.Unlock()

	assert.False(t, s.playback.tick())
	assert.Equal(t, 2.0, s.Playback().Position)
}

func TestPlayback_EditsDuringPlaybackReflectNextTick(t *testing.T) {
	s := sessionWithClips(t, 10)
	clipID := s.Clips()[0].ID
	s.mu.Lock()
	s.playback.state = PlaybackPlaying
	s.playback.position = 4.0
	s.mu.Unlock()

	// Trimming under the playhead shrinks the timeline to 3s effective;
	// the next tick re-reads live state and auto-stops.
	require.NoError(t, s.SetTrim(clipID, 3, 4))
	assert.False(t, s.playback.tick())
	assert.Equal(t, PlaybackStopped, s.Playback().State)
}

func TestPlayback_LoopAdvancesInRealTime(t *testing.T) {
	s := sessionWithClips(t, 30)
	defer s.Stop()

	s.Play()
	time.Sleep(5 * TickInterval)
	s.Pause()

	assert.Greater(t, s.Playback().Position, 0.0)
}

func TestPlaybackStatus_ResolvesActiveClipAndPlaceholder(t *testing.T) {
	s := NewSession(uuid.New())
	withMedia := makeClip(1, 5, 0, 0)
	withMedia.MediaURL = "https://cdn.example.com/scene1.mp4"
	placeholder := makeClip(2, 5, 0, 0) // not yet generated
	require.NoError(t, s.AppendClip(withMedia))
	require.NoError(t, s.AppendClip(placeholder))

	s.Seek(2)
	status := s.Playback()
	require.NotNil(t, status.ActiveClip)
	assert.Equal(t, withMedia.ID, status.ActiveClip.Clip.ID)
	assert.False(t, status.Placeholder)

	s.Seek(7)
	status = s.Playback()
	require.NotNil(t, status.ActiveClip)
	assert.Equal(t, placeholder.ID, status.ActiveClip.Clip.ID)
	assert.True(t, status.Placeholder)
	assert.Equal(t, 2, status.ActiveClip.Clip.SceneNumber)
}

func TestPlaybackStatus_EmptyTimeline(t *testing.T) {
	s := NewSession(uuid.New())
	status := s.Playback()
	assert.Nil(t, status.ActiveClip)
	assert.Equal(t, 0.0, status.TotalDuration)
}

func TestPlaybackStatus_TransitionWindow(t *testing.T) {
	s := sessionWithClips(t, 10, 6)
	clips := s.Clips()
	_, err := s.SetTransition(clips[0].ID, models.TransitionFade, 0.5)
	require.NoError(t, err)

	s.Seek(10.2)
	status := s.Playback()
	require.NotNil(t, status.Transition)
	assert.Equal(t, models.TransitionFade, status.Transition.Transition.Kind)

	s.Seek(10.6)
	assert.Nil(t, s.Playback().Transition)
}
