// Package stt provides the speech-to-text client for OpenAI-compatible
// transcription endpoints.
package stt

import "context"

// Request carries one encoded utterance to transcribe.
type Request struct {
	WAV      []byte // Encoded WAV container
	Language string // Optional language hint ("" for auto-detect)
}

// Transcriber converts encoded audio to text. Implementations must complete
// (success or failure) before returning; calls are never fire-and-forget.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}
