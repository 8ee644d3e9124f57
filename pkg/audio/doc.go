// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and float32 sample conversion functions
// Package audio provides the stream format shared by the synth outputs and
// recorder, plus conversions between float32 samples and packed bytes.
//
// The synth renders interleaved stereo float32. Device backends want the
// same samples as little-endian bytes; the WAV recorder wants 16-bit PCM.
//
// Example:
//
//	format := audio.Stereo(44100)
//	buf := make([]byte, len(samples)*audio.BytesPerFloat32)
//	audio.PutFloat32LE(buf, samples)
package audio
