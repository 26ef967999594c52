package hotkey

import (
	"log/slog"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// fallbackGrace is how long the monitor waits for the primary hotkey to
// produce an event before substituting Option. Some hardware and OS
// configurations swallow fn entirely; without the fallback the app would
// look dead.
const fallbackGrace = 5 * time.Second

// Handlers receives the derived gesture signals. Both callbacks run on the
// monitor's own goroutine, decoupled from the OS event-delivery thread, but
// should still return quickly.
type Handlers struct {
	// Down fires once when the hotkey goes down. Repeats while held are
	// coalesced.
	Down func()

	// Up fires when the hotkey is released. polishHeld reports whether the
	// polish modifier was held at any point while the hotkey was down, not
	// merely at the instant of release.
	Up func(polishHeld bool)
}

// Monitor turns raw system-wide key events into hotkey gesture signals.
type Monitor struct {
	primary  Spec
	handlers Handlers

	mu           sync.Mutex
	effective    Spec
	primarySeen  bool
	hotkeyDown   bool
	modifierDown bool
	polishHeld   bool

	events  chan hook.Event
	done    chan struct{}
	started bool
}

// NewMonitor creates a monitor for the given hotkey.
func NewMonitor(primary Spec, handlers Handlers) *Monitor {
	return &Monitor{
		primary:   primary,
		effective: primary,
		handlers:  handlers,
	}
}

// Start installs the system-wide hook and begins delivering signals. The
// low-level hook passes all events through; nothing is swallowed.
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	m.events = hook.Start()
	m.done = make(chan struct{})
	go m.loop()

	if m.primary != KeyOption {
		time.AfterFunc(fallbackGrace, m.checkFallback)
	}

	slog.Info("hotkey monitor started", "hotkey", m.primary, "polish_modifier", m.primary.PolishModifier())
	return nil
}

// Stop uninstalls the hook.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.started = false
	m.mu.Unlock()

	hook.End()
	<-m.done
}

// Hotkey returns the effective hotkey, which may differ from the configured
// one after the fallback engaged.
func (m *Monitor) Hotkey() Spec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.effective
}

func (m *Monitor) loop() {
	defer close(m.done)
	for ev := range m.events {
		m.processEvent(ev)
	}
}

// checkFallback substitutes Option as the effective hotkey if the primary
// key never produced an event within the grace window.
func (m *Monitor) checkFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.primarySeen || m.effective != m.primary {
		return
	}
	m.effective = KeyOption
	slog.Warn("hotkey produced no events, falling back",
		"configured", m.primary, "effective", m.effective)
}

// processEvent updates gesture state from one raw key event. It only
// touches flags and forwards signals; no I/O happens here.
func (m *Monitor) processEvent(ev hook.Event) {
	var down bool
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		down = true
	case hook.KeyUp:
		down = false
	default:
		return
	}

	m.mu.Lock()

	if m.primary.matches(ev.Rawcode) {
		m.primarySeen = true
	}

	hotkey := m.effective
	modifier := hotkey.PolishModifier()

	switch {
	case hotkey.matches(ev.Rawcode):
		if down {
			if m.hotkeyDown {
				// Key repeat while held; coalesce.
				m.mu.Unlock()
				return
			}
			m.hotkeyDown = true
			m.polishHeld = m.modifierDown
			m.mu.Unlock()
			if m.handlers.Down != nil {
				m.handlers.Down()
			}
			return
		}

		if !m.hotkeyDown {
			m.mu.Unlock()
			return
		}
		m.hotkeyDown = false
		latched := m.polishHeld
		m.polishHeld = false
		m.mu.Unlock()
		if m.handlers.Up != nil {
			m.handlers.Up(latched)
		}
		return

	case modifier.matches(ev.Rawcode):
		m.modifierDown = down
		if down && m.hotkeyDown {
			// Latched for the rest of the gesture even if released early.
			m.polishHeld = true
		}
	}

	m.mu.Unlock()
}
