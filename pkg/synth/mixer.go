// ABOUTME: Active-count normalizing mixer
// ABOUTME: Sums voice samples and scales by 1/active and master volume
package synth

// Mixer accumulates voice samples for one output tick
type Mixer struct {
	volume float64
	sum    float64
	active int
}

// NewMixer creates a mixer with the given master volume
func NewMixer(volume float64) *Mixer {
	return &Mixer{volume: volume}
}

// Reset clears the accumulator for the next tick
func (m *Mixer) Reset() {
	m.sum = 0
	m.active = 0
}

// Add accumulates one sounding voice's sample
func (m *Mixer) Add(sample float64) {
	m.sum += sample
	m.active++
}

// Active returns how many voices contributed this tick
func (m *Mixer) Active() int {
	return m.active
}

// Mix returns the normalized mono sample, or silence when no voice contributed
func (m *Mixer) Mix() float64 {
	if m.active == 0 {
		return 0
	}
	return m.sum / float64(m.active) * m.volume
}
