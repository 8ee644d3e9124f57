// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts rendered synth audio to another output rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation between neighbouring frames. The resampler is
// streaming: the last frame of each chunk is kept so consecutive calls join
// without a gap.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out := make([]float32, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
package resample
