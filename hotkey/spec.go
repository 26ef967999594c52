// Package hotkey observes system-wide key events and derives the
// hold-to-dictate gesture signals.
package hotkey

import "fmt"

// Spec identifies the configurable dictation hotkey.
type Spec int

const (
	KeyFn Spec = iota
	KeyOption
	KeyControl
	KeyShift
	KeyCommand
)

// ParseSpec resolves a config hotkey name to its Spec.
func ParseSpec(name string) (Spec, error) {
	switch name {
	case "fn":
		return KeyFn, nil
	case "option", "alt":
		return KeyOption, nil
	case "control", "ctrl":
		return KeyControl, nil
	case "shift":
		return KeyShift, nil
	case "command", "cmd":
		return KeyCommand, nil
	default:
		return 0, fmt.Errorf("hotkey: unknown key %q", name)
	}
}

func (s Spec) String() string {
	switch s {
	case KeyFn:
		return "fn"
	case KeyOption:
		return "option"
	case KeyControl:
		return "control"
	case KeyShift:
		return "shift"
	case KeyCommand:
		return "command"
	default:
		return "unknown"
	}
}

// PolishModifier returns the key that, held together with the hotkey,
// requests the alternate polish/raw behavior for a single dictation.
// Control's modifier is remapped to Shift so the modifier never equals the
// hotkey itself.
func (s Spec) PolishModifier() Spec {
	if s == KeyControl {
		return KeyShift
	}
	return KeyControl
}

// rawcodes returns the hardware rawcodes delivered for this key. Modifier
// keys have distinct left/right codes; fn has one. These are the macOS
// virtual key codes gohook reports as Event.Rawcode.
func (s Spec) rawcodes() []uint16 {
	switch s {
	case KeyFn:
		return []uint16{63}
	case KeyOption:
		return []uint16{58, 61}
	case KeyControl:
		return []uint16{59, 62}
	case KeyShift:
		return []uint16{56, 60}
	case KeyCommand:
		return []uint16{55, 54}
	default:
		return nil
	}
}

func (s Spec) matches(rawcode uint16) bool {
	for _, rc := range s.rawcodes() {
		if rc == rawcode {
			return true
		}
	}
	return false
}
