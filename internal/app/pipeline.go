package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/evoleinik/fnkey/internal/audioproc"
	"github.com/evoleinik/fnkey/internal/types"
	"github.com/evoleinik/fnkey/llm"
	"github.com/evoleinik/fnkey/stt"
)

// runPipeline carries a sealed session through shaping, transcription,
// the optional polish pass and the paste. Each stage's failure is
// classified and reported; only a sanitization failure degrades instead
// of aborting, falling back to the raw transcript.
func (s *Service) runPipeline(sess types.RecordingSession) {
	start := time.Now()

	shaped, err := audioproc.Shape(sess.Samples, sess.SampleRate)
	if err != nil {
		// An empty capture is a no-op by design: the operator tapped the
		// key without speaking.
		if err == audioproc.ErrEmptyCapture {
			slog.Debug("empty capture, nothing to transcribe", "session", sess.ID)
			return
		}
		s.report(types.NewFailure(types.FailureCapture, err))
		return
	}

	wav, err := audioproc.EncodeWAV(audioproc.Quantize(shaped), sess.SampleRate)
	if err != nil {
		s.report(types.NewFailure(types.FailureCapture, err))
		return
	}

	req := types.PipelineRequest{
		WAV:      wav,
		Language: s.cfg.Language,
		Sanitize: s.cfg.AlwaysPolish != sess.PolishHeld,
	}

	// Timeouts live in the network clients; the pipeline itself runs to
	// completion or failure with no mid-flight cancellation.
	ctx := context.Background()

	text, err := s.transcriber.Transcribe(ctx, stt.Request{WAV: req.WAV, Language: req.Language})
	if err != nil {
		s.report(types.NewFailure(types.FailureTranscription, err))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Debug("empty transcript, nothing to paste", "session", sess.ID)
		return
	}

	result := types.PipelineResult{Text: text, Provenance: types.ProvenanceRaw}
	if req.Sanitize {
		polished, err := s.polish(ctx, text)
		switch {
		case err != nil:
			s.report(types.NewFailure(types.FailureSanitization, err))
		case polished != "":
			result = types.PipelineResult{Text: polished, Provenance: types.ProvenanceSanitized}
		}
	}

	if err := s.sink.Paste(result.Text); err != nil {
		s.report(types.NewFailure(types.FailurePaste, err))
		return
	}

	slog.Info("dictation pasted",
		"session", sess.ID,
		"provenance", result.Provenance,
		"chars", len(result.Text),
		"audio", sess.Duration().Round(time.Millisecond),
		"elapsed", time.Since(start).Round(time.Millisecond))
}

// polish rewrites the raw transcript with the configured prompt. The
// transcript is the sole user message so the model cannot mistake earlier
// dictations for context.
func (s *Service) polish(ctx context.Context, raw string) (string, error) {
	out, err := s.polisher.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: s.cfg.PolishPrompt},
		{Role: llm.RoleUser, Content: raw},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
