// ABOUTME: Saturated sawtooth oscillator and pitch conversion
// ABOUTME: Pure per-sample functions used by the tone generator
package synth

import "math"

// MidiToFreq converts a note number to its equal-tempered frequency (A4 = 69 = 440Hz)
func MidiToFreq(note int) float64 {
	return 440.0 * math.Pow(2.0, float64(note-69)/12.0)
}

// Saw returns one sample of a sawtooth at time t (seconds) and frequency f (Hz),
// softened by tanh saturation. The result is always within [-1, 1].
func Saw(t, f, drive float64) float64 {
	x := t * f
	raw := 2.0 * (x - math.Floor(x+0.5))
	return math.Tanh(raw * drive)
}
