// Package paste delivers final text to the active application's input
// focus by writing the clipboard and simulating the platform paste gesture.
package paste

import (
	"fmt"

	"github.com/evoleinik/fnkey/clipboard"
)

// Sink consumes a pipeline's final text exactly once.
type Sink interface {
	Paste(text string) error
}

// systemSink is the real implementation. It does not restore the previous
// clipboard contents; overwrite is a documented trade-off.
type systemSink struct{}

// NewSystemSink returns the platform paste sink.
func NewSystemSink() Sink {
	return systemSink{}
}

// Paste writes text to the clipboard and, only once the write is confirmed,
// posts the paste key combination at the current input focus. If the
// gesture fails the text stays on the clipboard for a manual paste.
func (systemSink) Paste(text string) error {
	if err := clipboard.SetText(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	if err := sendPasteKeystroke(); err != nil {
		return fmt.Errorf("send paste keystroke: %w", err)
	}
	return nil
}
