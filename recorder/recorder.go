// Package recorder owns the microphone capture lifecycle for one dictation
// gesture at a time.
package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evoleinik/fnkey/audiocapture"
	"github.com/evoleinik/fnkey/internal/types"
)

// ErrAlreadyRecording is returned by Start while a session is active.
// Callers treat it as a no-op: re-entrant hotkey-down events are expected.
var ErrAlreadyRecording = errors.New("recorder: already recording")

// ErrNotRecording is returned by Stop when no session is active, including
// after a capture failure already tore the session down.
var ErrNotRecording = errors.New("recorder: not recording")

// drainDelay gives in-flight audio callbacks time to land in the buffer
// after hotkey-up, so the tail of the utterance is not cut off.
const drainDelay = 50 * time.Millisecond

// Recorder is the two-state (Idle/Recording) capture state machine. The
// capture device is opened on Start and closed on Stop or failure, so the
// OS microphone indicator tracks actual dictation.
type Recorder struct {
	newCapturer func() (audiocapture.Capturer, error)

	// OnIndicator, if set, receives the recording on/off signal. Asserted
	// exactly for the duration of the Recording state.
	OnIndicator func(recording bool)

	// OnFailure, if set, receives asynchronous capture failures.
	OnFailure func(f *types.Failure)

	mu      sync.Mutex
	capture audiocapture.Capturer
	session *activeSession
}

// activeSession accumulates frames for the in-progress gesture.
type activeSession struct {
	id        string
	startedAt time.Time

	mu      sync.Mutex
	samples []float32
	failed  bool
}

func (s *activeSession) append(frames []float32) {
	s.mu.Lock()
	s.samples = append(s.samples, frames...)
	s.mu.Unlock()
}

// New creates a Recorder backed by the platform capture device.
func New() *Recorder {
	return &Recorder{newCapturer: audiocapture.New}
}

// NewWithCapturer creates a Recorder with a custom capture constructor.
func NewWithCapturer(newCapturer func() (audiocapture.Capturer, error)) *Recorder {
	return &Recorder{newCapturer: newCapturer}
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// Start transitions Idle -> Recording: opens the capture device and begins
// buffering frames in arrival order. A Start while Recording returns
// ErrAlreadyRecording and changes nothing.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return ErrAlreadyRecording
	}

	capture, err := r.newCapturer()
	if err != nil {
		return fmt.Errorf("open capture device: %w", err)
	}

	session := &activeSession{
		id:        uuid.NewString(),
		startedAt: time.Now(),
	}

	if err := capture.Start(session.append, func(err error) {
		r.handleCaptureError(session, err)
	}); err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	r.capture = capture
	r.session = session
	r.setIndicator(true)
	slog.Debug("recording started", "session", session.id)
	return nil
}

// Stop transitions Recording -> Idle and returns the sealed session
// snapshot. polishHeld is the latched modifier flag reported by the key
// monitor for this gesture. After Stop the live buffer is gone; the
// returned snapshot is the sole owner of the samples.
func (r *Recorder) Stop(polishHeld bool) (types.RecordingSession, error) {
	r.mu.Lock()
	session := r.session
	capture := r.capture
	r.session = nil
	r.capture = nil
	r.mu.Unlock()

	if session == nil {
		return types.RecordingSession{}, ErrNotRecording
	}

	// Let trailing callbacks deliver before closing the device.
	time.Sleep(drainDelay)

	if err := capture.Stop(); err != nil {
		slog.Warn("stop capture device", "session", session.id, "error", err)
	}
	r.setIndicator(false)

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.failed {
		return types.RecordingSession{}, ErrNotRecording
	}

	sealed := types.RecordingSession{
		ID:         session.id,
		StartedAt:  session.startedAt,
		Samples:    session.samples,
		SampleRate: capture.SampleRate(),
		PolishHeld: polishHeld,
	}
	session.samples = nil

	slog.Debug("recording sealed",
		"session", sealed.ID,
		"samples", len(sealed.Samples),
		"sample_rate", sealed.SampleRate,
		"duration", sealed.Duration())
	return sealed, nil
}

// handleCaptureError tears down a session whose device failed mid-capture.
// The orchestrator is notified instead of receiving a sealed session.
func (r *Recorder) handleCaptureError(session *activeSession, err error) {
	session.mu.Lock()
	alreadyFailed := session.failed
	session.failed = true
	session.mu.Unlock()

	if alreadyFailed {
		return
	}

	r.mu.Lock()
	if r.session == session {
		capture := r.capture
		r.session = nil
		r.capture = nil
		r.mu.Unlock()
		if stopErr := capture.Stop(); stopErr != nil {
			slog.Warn("stop failed capture device", "session", session.id, "error", stopErr)
		}
		r.setIndicator(false)
	} else {
		r.mu.Unlock()
	}

	if r.OnFailure != nil {
		r.OnFailure(types.NewFailure(types.FailureCapture, err))
	}
}

func (r *Recorder) setIndicator(on bool) {
	if r.OnIndicator != nil {
		r.OnIndicator(on)
	}
}
