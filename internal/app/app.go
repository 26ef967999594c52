// Package app wires the hotkey gesture, the recorder and the network
// pipeline into the dictation service.
package app

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/evoleinik/fnkey/config"
	"github.com/evoleinik/fnkey/internal/types"
	"github.com/evoleinik/fnkey/llm"
	"github.com/evoleinik/fnkey/paste"
	"github.com/evoleinik/fnkey/recorder"
	"github.com/evoleinik/fnkey/stt"
)

// Service is the pipeline orchestrator: it owns the policy that turns a
// sealed recording session into a pasted result, and the guarantee that at
// most one pipeline is in flight.
type Service struct {
	cfg         *config.Config
	rec         *recorder.Recorder
	transcriber stt.Transcriber
	polisher    llm.Completer
	sink        paste.Sink

	inFlight atomic.Bool
}

// New creates the service. cfg is read-only for the process lifetime.
func New(cfg *config.Config, rec *recorder.Recorder, transcriber stt.Transcriber, polisher llm.Completer, sink paste.Sink) *Service {
	s := &Service{
		cfg:         cfg,
		rec:         rec,
		transcriber: transcriber,
		polisher:    polisher,
		sink:        sink,
	}
	rec.OnFailure = s.handleCaptureFailure
	return s
}

// HandleHotkeyDown starts a recording session. While a pipeline is in
// flight the gesture is ignored, not queued; the recorder's own
// re-entrancy rule is the second line of defense against duplicate starts.
func (s *Service) HandleHotkeyDown() {
	if s.inFlight.Load() {
		slog.Debug("hotkey-down ignored, pipeline in flight")
		return
	}

	if err := s.rec.Start(); err != nil {
		if errors.Is(err, recorder.ErrAlreadyRecording) {
			return
		}
		slog.Error("start recording", "error", err)
	}
}

// HandleHotkeyUp seals the session and spawns its pipeline. The pipeline
// runs on its own goroutine so it never stalls key detection for the next
// gesture.
func (s *Service) HandleHotkeyUp(polishHeld bool) {
	sess, err := s.rec.Stop(polishHeld)
	if err != nil {
		if !errors.Is(err, recorder.ErrNotRecording) {
			slog.Error("stop recording", "error", err)
		}
		return
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		// Should be unreachable: the down that opened this session was
		// already gated. Kept as a race guard.
		slog.Warn("pipeline in flight, dropping session", "session", sess.ID)
		return
	}

	go func() {
		defer s.inFlight.Store(false)
		s.runPipeline(sess)
	}()
}

// Busy reports whether a pipeline is currently in flight.
func (s *Service) Busy() bool {
	return s.inFlight.Load()
}

func (s *Service) handleCaptureFailure(f *types.Failure) {
	s.report(f)
}

// report is the single observability choke point for classified failures.
// Nothing here blocks or prompts; dictation failures must not interrupt
// the operator's typing flow.
func (s *Service) report(f *types.Failure) {
	switch f.Kind {
	case types.FailureSanitization:
		slog.Warn("polish failed, pasting raw transcript", "error", f.Err)
	case types.FailurePaste:
		slog.Error("paste failed, text remains on clipboard", "error", f.Err)
	default:
		slog.Error("dictation failed", "kind", f.Kind, "error", f.Err)
	}
}
