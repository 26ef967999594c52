// Package audiocapture provides microphone capture at the device's native
// sample rate.
package audiocapture

import "errors"

// ErrRunning is returned when trying to start capture while already capturing.
var ErrRunning = errors.New("audiocapture: already capturing")

// ErrUnsupported is returned on platforms without a capture implementation.
var ErrUnsupported = errors.New("audiocapture: unsupported platform")

// AudioHandler receives mono float32 samples in the range [-1, 1], in
// arrival order. It is called from the audio subsystem's delivery thread
// and must not block.
type AudioHandler func(samples []float32)

// ErrorHandler receives asynchronous device errors raised mid-capture.
type ErrorHandler func(err error)

// Capturer is a microphone capture device. It is opened per session: Start
// on hotkey-down, Stop on hotkey-up, so the OS microphone indicator is only
// active while a dictation is in progress.
type Capturer interface {
	// Start opens the device and begins delivering samples to onAudio.
	// onError, if non-nil, receives device failures raised after Start
	// returned.
	Start(onAudio AudioHandler, onError ErrorHandler) error

	// Stop closes the device. Safe to call when not capturing.
	Stop() error

	// SampleRate returns the device's native sample rate as discovered at
	// Start, or 0 before the first Start.
	SampleRate() int
}
