// ABOUTME: Detuned oscillator bank (per-voice tone generator)
// ABOUTME: Averages a fixed set of detuned saws around the voice pitch
package synth

// DetuneBank is the fixed set of frequency offsets (Hz) summed for every voice
type DetuneBank struct {
	offsets []float64
	drive   float64
}

// NewDetuneBank builds size offsets spread symmetrically around zero,
// step Hz apart. An even size is shifted half a step so it stays centered.
func NewDetuneBank(size int, step, drive float64) DetuneBank {
	if size < 1 {
		size = 1
	}

	offsets := make([]float64, size)
	center := float64(size-1) / 2.0
	for i := range offsets {
		offsets[i] = (float64(i) - center) * step
	}

	return DetuneBank{
		offsets: offsets,
		drive:   drive,
	}
}

// Size returns the number of oscillators in the bank
func (b DetuneBank) Size() int {
	return len(b.offsets)
}

// Offsets returns a copy of the detune offsets in Hz
func (b DetuneBank) Offsets() []float64 {
	out := make([]float64, len(b.offsets))
	copy(out, b.offsets)
	return out
}

// Sample renders the level-normalized bank at time t around base frequency freq
func (b DetuneBank) Sample(t, freq float64) float64 {
	sum := 0.0
	for _, off := range b.offsets {
		sum += Saw(t, freq+off, b.drive)
	}
	return sum / float64(len(b.offsets))
}

// Render returns one sample for the voice: the bank output weighted by its envelope
func (b DetuneBank) Render(v *Voice, freq float64) float64 {
	return b.Sample(v.time, freq) * v.level
}
