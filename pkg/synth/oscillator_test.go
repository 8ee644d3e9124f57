// ABOUTME: Tests for the saw oscillator and pitch conversion
// ABOUTME: Verifies saturation bounds and equal-tempered frequencies
package synth

import (
	"math"
	"testing"
)

func TestMidiToFreq(t *testing.T) {
	tests := []struct {
		note     int
		expected float64
	}{
		{69, 440.0},
		{57, 220.0},
		{81, 880.0},
		{60, 261.6255653005986},
		{0, 8.175798915643707},
	}

	for _, tt := range tests {
		got := MidiToFreq(tt.note)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("note %d: expected %f Hz, got %f", tt.note, tt.expected, got)
		}
	}
}

func TestMidiToFreqMonotonic(t *testing.T) {
	prev := MidiToFreq(-1)
	for n := 0; n < MaxNotes; n++ {
		f := MidiToFreq(n)
		if f <= prev {
			t.Fatalf("expected frequency to increase at note %d: %f <= %f", n, f, prev)
		}
		prev = f
	}
}

func TestSawBounded(t *testing.T) {
	times := []float64{0, 1e-6, 0.0113, 0.5, 1, 3.75, 1234.5678, 1e6}
	freqs := []float64{0, 0.005, 27.5, 261.63, 440, 4186, 22050, 1e5}

	for _, tm := range times {
		for _, f := range freqs {
			s := Saw(tm, f, DefaultDrive)
			if s < -1 || s > 1 || math.IsNaN(s) {
				t.Errorf("Saw(%v, %v) = %v, expected value in [-1, 1]", tm, f, s)
			}
		}
	}
}

func TestSawShape(t *testing.T) {
	// Zero crossing at t=0
	if s := Saw(0, 440, DefaultDrive); s != 0 {
		t.Errorf("expected 0 at t=0, got %f", s)
	}

	// Quarter period: raw saw is 0.5, so output is tanh(0.5*drive)
	f := 100.0
	got := Saw(0.25/f, f, DefaultDrive)
	expected := math.Tanh(0.5 * DefaultDrive)
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("expected %f at quarter period, got %f", expected, got)
	}

	// Periodic in 1/f
	a := Saw(0.0123, f, DefaultDrive)
	b := Saw(0.0123+1/f, f, DefaultDrive)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("expected period 1/f: %f vs %f", a, b)
	}
}
