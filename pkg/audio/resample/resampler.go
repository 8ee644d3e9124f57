// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Streams interleaved float32 chunks, carrying the last frame across calls
package resample

import "math"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64   // read position in input frames; -1 is the saved last frame
	lastFrame  []float32 // one sample per channel
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
		lastFrame:  make([]float32, channels),
	}
}

// Resample converts input samples to output sample rate using linear interpolation.
// input: interleaved samples at inputRate
// output: interleaved samples at outputRate, sized with OutputSamplesNeeded
// Returns the number of output samples written.
func (r *Resampler) Resample(input []float32, output []float32) int {
	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return 0
	}
	outputFrames := len(output) / r.channels

	sample := func(frame, ch int) float32 {
		if frame < 0 {
			return r.lastFrame[ch]
		}
		return input[frame*r.channels+ch]
	}

	outIdx := 0
	for outIdx < outputFrames {
		idx := int(math.Floor(r.position))

		// Need the frame after idx to interpolate
		if idx+1 >= inputFrames {
			break
		}

		frac := float32(r.position - float64(idx))
		for ch := 0; ch < r.channels; ch++ {
			a := sample(idx, ch)
			b := sample(idx+1, ch)
			output[outIdx*r.channels+ch] = a + (b-a)*frac
		}

		outIdx++
		r.position += r.ratio
	}

	// Rebase onto the next chunk; the last frame becomes index -1
	r.position -= float64(inputFrames)
	if r.position < -1 {
		r.position = -1
	}
	copy(r.lastFrame, input[(inputFrames-1)*r.channels:])

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
	clear(r.lastFrame)
}

// Ratio returns input frames consumed per output frame
func (r *Resampler) Ratio() float64 {
	return r.ratio
}

// OutputSamplesNeeded returns an output size large enough for inputSamples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(math.Ceil(float64(inputFrames)/r.ratio)) + 1
	return outputFrames * r.channels
}
