// Package types provides shared type definitions for the application.
package types

import (
	"fmt"
	"time"
)

// RecordingSession is the sealed result of one hotkey-down-to-hotkey-up
// capture. It is created by the recorder when the gesture ends and is
// immutable from then on.
type RecordingSession struct {
	ID         string    // Unique session identifier
	StartedAt  time.Time // When capture began
	Samples    []float32 // Captured samples in arrival order, range [-1, 1]
	SampleRate int       // Device's native sample rate in Hz
	PolishHeld bool      // Polish modifier was held at any point during capture
}

// Duration returns the captured audio duration.
func (s RecordingSession) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// PipelineRequest is the immutable value that flows through the network
// stages of a dictation pipeline.
type PipelineRequest struct {
	WAV      []byte // Encoded audio container
	Language string // Optional language hint ("" for auto-detect)
	Sanitize bool   // Whether the polish pass applies
}

// Provenance describes how the final text of a pipeline was produced.
type Provenance int

const (
	// ProvenanceRaw means the text came straight from transcription.
	ProvenanceRaw Provenance = iota
	// ProvenanceSanitized means the polish pass cleaned the text.
	ProvenanceSanitized
)

func (p Provenance) String() string {
	if p == ProvenanceSanitized {
		return "sanitized"
	}
	return "raw"
}

// PipelineResult is the final output of a dictation pipeline, consumed
// exactly once by the paste sink.
type PipelineResult struct {
	Text       string
	Provenance Provenance
}

// FailureKind classifies pipeline failures. Every error crossing into the
// orchestrator is converted to one of these kinds.
type FailureKind int

const (
	// FailureCapture is a device error mid-recording. The session aborts.
	FailureCapture FailureKind = iota
	// FailureEmptyCapture means zero frames were captured. Silent no-op.
	FailureEmptyCapture
	// FailureTranscription aborts the pipeline; nothing is pasted.
	FailureTranscription
	// FailureSanitization degrades the pipeline to a raw-text paste.
	FailureSanitization
	// FailurePaste means the clipboard was written but the gesture failed;
	// the text remains available for a manual paste.
	FailurePaste
)

func (k FailureKind) String() string {
	switch k {
	case FailureCapture:
		return "capture"
	case FailureEmptyCapture:
		return "empty-capture"
	case FailureTranscription:
		return "transcription"
	case FailureSanitization:
		return "sanitization"
	case FailurePaste:
		return "paste"
	default:
		return "unknown"
	}
}

// Failure wraps an underlying error with its pipeline classification.
type Failure struct {
	Kind FailureKind
	Err  error
}

// NewFailure classifies err under kind.
func NewFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String() + " failure"
	}
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
