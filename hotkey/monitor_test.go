package hotkey

import (
	"testing"

	hook "github.com/robotn/gohook"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Spec
		wantErr bool
	}{
		{"fn", "fn", KeyFn, false},
		{"option", "option", KeyOption, false},
		{"alt_alias", "alt", KeyOption, false},
		{"control", "control", KeyControl, false},
		{"ctrl_alias", "ctrl", KeyControl, false},
		{"shift", "shift", KeyShift, false},
		{"command", "command", KeyCommand, false},
		{"cmd_alias", "cmd", KeyCommand, false},
		{"unknown", "hyper", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSpec(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPolishModifierNeverEqualsHotkey(t *testing.T) {
	for _, s := range []Spec{KeyFn, KeyOption, KeyControl, KeyShift, KeyCommand} {
		if s.PolishModifier() == s {
			t.Errorf("%v: polish modifier equals hotkey", s)
		}
	}
}

func TestControlModifierRemap(t *testing.T) {
	if got := KeyControl.PolishModifier(); got != KeyShift {
		t.Errorf("control polish modifier = %v, want shift", got)
	}
	if got := KeyFn.PolishModifier(); got != KeyControl {
		t.Errorf("fn polish modifier = %v, want control", got)
	}
}

// recordingHandlers collects signals emitted by the monitor.
type recordingHandlers struct {
	downs int
	ups   []bool
}

func newTestMonitor(primary Spec) (*Monitor, *recordingHandlers) {
	rec := &recordingHandlers{}
	m := NewMonitor(primary, Handlers{
		Down: func() { rec.downs++ },
		Up:   func(polish bool) { rec.ups = append(rec.ups, polish) },
	})
	return m, rec
}

func keyEvent(kind uint8, rawcode uint16) hook.Event {
	return hook.Event{Kind: kind, Rawcode: rawcode}
}

func TestGestureDownUp(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyUp, 63))

	if rec.downs != 1 {
		t.Errorf("downs = %d, want 1", rec.downs)
	}
	if len(rec.ups) != 1 || rec.ups[0] {
		t.Errorf("ups = %v, want one raw release", rec.ups)
	}
}

func TestRepeatedDownCoalesced(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyHold, 63))
	m.processEvent(keyEvent(hook.KeyUp, 63))

	if rec.downs != 1 {
		t.Errorf("downs = %d, want 1 (repeats must coalesce)", rec.downs)
	}
	if len(rec.ups) != 1 {
		t.Errorf("ups = %d, want 1", len(rec.ups))
	}
}

func TestUpWithoutDownIgnored(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyUp, 63))

	if rec.downs != 0 || len(rec.ups) != 0 {
		t.Errorf("stray release produced signals: downs=%d ups=%v", rec.downs, rec.ups)
	}
}

func TestModifierLatchedWhenReleasedEarly(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 63)) // hotkey down
	m.processEvent(keyEvent(hook.KeyDown, 59)) // control down
	m.processEvent(keyEvent(hook.KeyUp, 59))   // control released mid-gesture
	m.processEvent(keyEvent(hook.KeyUp, 63))   // hotkey up

	if len(rec.ups) != 1 || !rec.ups[0] {
		t.Errorf("ups = %v, want one release with polish latched", rec.ups)
	}
}

func TestModifierHeldBeforeHotkey(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 59)) // control down first
	m.processEvent(keyEvent(hook.KeyDown, 63)) // then hotkey
	m.processEvent(keyEvent(hook.KeyUp, 63))

	if len(rec.ups) != 1 || !rec.ups[0] {
		t.Errorf("ups = %v, want polish latched from pre-held modifier", rec.ups)
	}
}

func TestModifierDoesNotLeakAcrossGestures(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyDown, 59))
	m.processEvent(keyEvent(hook.KeyUp, 59))
	m.processEvent(keyEvent(hook.KeyUp, 63))

	// Second gesture with no modifier.
	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyUp, 63))

	if len(rec.ups) != 2 {
		t.Fatalf("ups = %d, want 2", len(rec.ups))
	}
	if !rec.ups[0] || rec.ups[1] {
		t.Errorf("ups = %v, want [true false]", rec.ups)
	}
}

func TestControlHotkeyUsesShiftModifier(t *testing.T) {
	m, rec := newTestMonitor(KeyControl)

	m.processEvent(keyEvent(hook.KeyDown, 59)) // control is the hotkey now
	m.processEvent(keyEvent(hook.KeyDown, 56)) // shift is its modifier
	m.processEvent(keyEvent(hook.KeyUp, 56))
	m.processEvent(keyEvent(hook.KeyUp, 59))

	if rec.downs != 1 {
		t.Errorf("downs = %d, want 1", rec.downs)
	}
	if len(rec.ups) != 1 || !rec.ups[0] {
		t.Errorf("ups = %v, want polish latched via shift", rec.ups)
	}
}

func TestFallbackSwitchesToOption(t *testing.T) {
	m, rec := newTestMonitor(KeyFn)

	// Grace window elapses with no fn event.
	m.checkFallback()

	if got := m.Hotkey(); got != KeyOption {
		t.Fatalf("effective hotkey = %v, want option", got)
	}

	// Option now drives the gesture; fn events are dead.
	m.processEvent(keyEvent(hook.KeyDown, 58))
	m.processEvent(keyEvent(hook.KeyUp, 58))

	if rec.downs != 1 || len(rec.ups) != 1 {
		t.Errorf("fallback hotkey produced downs=%d ups=%d, want 1/1", rec.downs, len(rec.ups))
	}
}

func TestNoFallbackWhenPrimarySeen(t *testing.T) {
	m, _ := newTestMonitor(KeyFn)

	m.processEvent(keyEvent(hook.KeyDown, 63))
	m.processEvent(keyEvent(hook.KeyUp, 63))
	m.checkFallback()

	if got := m.Hotkey(); got != KeyFn {
		t.Errorf("effective hotkey = %v, want fn (primary was seen)", got)
	}
}

func TestRightHandModifierVariants(t *testing.T) {
	m, rec := newTestMonitor(KeyCommand)

	m.processEvent(keyEvent(hook.KeyDown, 54)) // right command
	m.processEvent(keyEvent(hook.KeyDown, 62)) // right control
	m.processEvent(keyEvent(hook.KeyUp, 62))
	m.processEvent(keyEvent(hook.KeyUp, 54))

	if rec.downs != 1 {
		t.Errorf("downs = %d, want 1", rec.downs)
	}
	if len(rec.ups) != 1 || !rec.ups[0] {
		t.Errorf("ups = %v, want polish latched", rec.ups)
	}
}
