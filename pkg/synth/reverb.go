// ABOUTME: Single-tap feedback delay reverb
// ABOUTME: Circular buffer that recirculates its own wet output
package synth

// Reverb is a feedback delay line. It is confined to the audio goroutine.
type Reverb struct {
	buf      []float64
	cursor   int
	feedback float64
}

// NewReverb creates a delay line of length samples (minimum 1)
func NewReverb(length int, feedback float64) *Reverb {
	if length < 1 {
		length = 1
	}
	return &Reverb{
		buf:      make([]float64, length),
		feedback: feedback,
	}
}

// Process adds the decayed delayed sample to dry, stores the wet result
// at the cursor and advances it
func (r *Reverb) Process(dry float64) float64 {
	wet := dry + r.buf[r.cursor]*r.feedback
	r.buf[r.cursor] = wet

	r.cursor++
	if r.cursor == len(r.buf) {
		r.cursor = 0
	}
	return wet
}

// Len returns the delay line length in samples
func (r *Reverb) Len() int {
	return len(r.buf)
}

// Cursor returns the current write position
func (r *Reverb) Cursor() int {
	return r.cursor
}

// Energy returns the sum of squares of the stored samples
func (r *Reverb) Energy() float64 {
	e := 0.0
	for _, s := range r.buf {
		e += s * s
	}
	return e
}

// Reset clears the delay line
func (r *Reverb) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.cursor = 0
}
