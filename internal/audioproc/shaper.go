// Package audioproc provides signal conditioning and WAV framing for
// captured microphone audio.
package audioproc

import (
	"errors"
	"math"
)

// ErrEmptyCapture is returned when a session produced zero frames.
var ErrEmptyCapture = errors.New("audioproc: no captured samples")

const (
	// highpassCutoffHz attenuates low-frequency rumble below typical voice
	// fundamentals.
	highpassCutoffHz = 80.0

	// normTarget is the peak-normalization ceiling, just under full scale.
	normTarget = 0.95
)

// Shape conditions a raw capture buffer for transcription. It applies, in
// order: DC-offset removal, a first-order high-pass filter, and peak
// normalization. The transform is a pure function of its inputs.
func Shape(samples []float32, sampleRate int) ([]float32, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyCapture
	}

	out := removeDC(samples)
	highpass(out, sampleRate)
	normalize(out)
	return out, nil
}

// removeDC subtracts the buffer mean so the signal is centered at zero.
func removeDC(samples []float32) []float32 {
	var sum float64
	for _, s := range samples {
		sum += float64(s)
	}
	mean := float32(sum / float64(len(samples)))

	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = s - mean
	}
	return out
}

// highpass applies a first-order high-pass filter in place.
func highpass(samples []float32, sampleRate int) {
	if sampleRate <= 0 {
		return
	}

	a := float32(math.Exp(-2 * math.Pi * highpassCutoffHz / float64(sampleRate)))

	var prevX, prevY float32
	for i, x := range samples {
		y := a * (prevY + x - prevX)
		samples[i] = y
		prevX = x
		prevY = y
	}
}

// normalize scales the buffer so its peak reaches normTarget. A silent
// (all-zero) buffer is left untouched.
func normalize(samples []float32) {
	var peak float32
	for _, s := range samples {
		if abs := float32(math.Abs(float64(s))); abs > peak {
			peak = abs
		}
	}
	if peak == 0 {
		return
	}

	gain := normTarget / peak
	for i := range samples {
		samples[i] *= gain
	}
}

// Quantize converts float32 samples in [-1, 1] to signed 16-bit PCM,
// clamping out-of-range values.
func Quantize(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(s * 32767)
	}
	return out
}
