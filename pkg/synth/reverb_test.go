// ABOUTME: Tests for the feedback delay reverb
// ABOUTME: Verifies dry passthrough, cursor wrap and decaying energy
package synth

import (
	"math/rand"
	"testing"
)

func TestReverbZeroFeedbackIsDry(t *testing.T) {
	r := NewReverb(64, 0)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		in := rng.Float64()*2 - 1
		if out := r.Process(in); out != in {
			t.Fatalf("sample %d: expected %f, got %f", i, in, out)
		}
	}
}

func TestReverbCursorWraps(t *testing.T) {
	r := NewReverb(5, 0.5)

	for i := 0; i < 12; i++ {
		if r.Cursor() != i%5 {
			t.Fatalf("step %d: expected cursor %d, got %d", i, i%5, r.Cursor())
		}
		r.Process(0)
	}
}

func TestReverbEcho(t *testing.T) {
	r := NewReverb(4, 0.5)

	// Impulse then silence: echoes every 4 samples, halving each time
	got := []float64{r.Process(1)}
	for i := 0; i < 12; i++ {
		got = append(got, r.Process(0))
	}

	want := []float64{1, 0, 0, 0, 0.5, 0, 0, 0, 0.25, 0, 0, 0, 0.125}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestReverbEnergyDecays(t *testing.T) {
	const length = 100
	r := NewReverb(length, DefaultReverbFeedback)

	for i := 0; i < length; i++ {
		r.Process(0.5)
	}

	prev := r.Energy()
	if prev == 0 {
		t.Fatal("expected energy after input")
	}

	for cycle := 0; cycle < 10; cycle++ {
		for i := 0; i < length; i++ {
			r.Process(0)
		}
		e := r.Energy()
		if e >= prev {
			t.Fatalf("cycle %d: expected energy to decay, %f >= %f", cycle, e, prev)
		}
		prev = e
	}
}

func TestReverbReset(t *testing.T) {
	r := NewReverb(8, 0.5)
	r.Process(1)
	r.Process(1)
	r.Reset()

	if r.Energy() != 0 || r.Cursor() != 0 {
		t.Errorf("expected cleared delay line, got energy %f cursor %d", r.Energy(), r.Cursor())
	}
}
