package audiocapture

import (
	"errors"
	"runtime"
	"testing"
)

func TestNew(t *testing.T) {
	c, err := New()

	// Platform-dependent behavior
	if runtime.GOOS != "darwin" {
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported on %s, got %v", runtime.GOOS, err)
		}
		return
	}

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil Capturer")
	}
	if got := c.SampleRate(); got != 0 {
		t.Fatalf("SampleRate before Start = %d, want 0", got)
	}
}

func TestStartWithNilHandler(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("skipping on non-darwin")
	}

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Start(nil, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestStopIdempotent(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("skipping on non-darwin")
	}

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Stop without Start is a no-op.
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestDoubleStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if runtime.GOOS != "darwin" {
		t.Skip("skipping on non-darwin")
	}

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Stop()

	if err := c.Start(func([]float32) {}, nil); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if c.SampleRate() <= 0 {
		t.Error("expected positive native sample rate after Start")
	}

	if err := c.Start(func([]float32) {}, nil); !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
}
