//go:build darwin

package audiocapture

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AVFoundation -framework Foundation

#include <stdlib.h>

extern int startMicCapture(int* sampleRateOut, char** errOut);
extern void stopMicCapture(void);
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"
)

// Global handlers for the CGO callback. Only one capture at a time.
var (
	globalMu      sync.RWMutex
	globalOnAudio AudioHandler
	globalOnError ErrorHandler
)

//export goAudioCallback
func goAudioCallback(samples *C.float, count C.int) {
	n := int(count)
	if n <= 0 {
		return
	}

	globalMu.RLock()
	h := globalOnAudio
	globalMu.RUnlock()

	if h == nil {
		return
	}

	// Convert C array to Go slice without extra allocation.
	// Safe because the handler copies samples before returning.
	goSamples := unsafe.Slice((*float32)(unsafe.Pointer(samples)), n)
	h(goSamples)
}

//export goCaptureError
func goCaptureError(msg *C.char) {
	globalMu.RLock()
	h := globalOnError
	globalMu.RUnlock()

	if h == nil {
		return
	}
	h(errors.New("audiocapture: " + C.GoString(msg)))
}

// capturer is the macOS implementation using AVAudioEngine.
type capturer struct {
	mu         sync.Mutex
	running    bool
	sampleRate int
}

// New creates a Capturer for macOS.
func New() (Capturer, error) {
	return &capturer{}, nil
}

func (c *capturer) Start(onAudio AudioHandler, onError ErrorHandler) error {
	if onAudio == nil {
		return errors.New("audiocapture: nil handler")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrRunning
	}

	// Set global handlers before starting capture.
	globalMu.Lock()
	globalOnAudio = onAudio
	globalOnError = onError
	globalMu.Unlock()

	var rate C.int
	var errStr *C.char
	result := C.startMicCapture(&rate, &errStr)
	if result != 0 {
		globalMu.Lock()
		globalOnAudio = nil
		globalOnError = nil
		globalMu.Unlock()

		if errStr != nil {
			err := errors.New("audiocapture: " + C.GoString(errStr))
			C.free(unsafe.Pointer(errStr))
			return err
		}
		return errors.New("audiocapture: unknown error")
	}

	c.sampleRate = int(rate)
	c.running = true
	return nil
}

func (c *capturer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	C.stopMicCapture()

	globalMu.Lock()
	globalOnAudio = nil
	globalOnError = nil
	globalMu.Unlock()

	c.running = false
	return nil
}

func (c *capturer) SampleRate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleRate
}
