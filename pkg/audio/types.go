// ABOUTME: Audio type definitions
// ABOUTME: Defines stream format and float32 sample conversions
package audio

import (
	"encoding/binary"
	"math"
)

const (
	// 16-bit PCM range
	MaxInt16 = math.MaxInt16
	MinInt16 = math.MinInt16

	// BytesPerFloat32 is the size of one float32 sample
	BytesPerFloat32 = 4
)

// Format describes an output stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int // 16 for PCM files, 32 for float device streams
}

// FrameSize returns the bytes per interleaved frame
func (f Format) FrameSize() int {
	return f.Channels * f.BitDepth / 8
}

// Stereo returns the float32 stereo format used by the synth at sampleRate
func Stereo(sampleRate int) Format {
	return Format{
		SampleRate: sampleRate,
		Channels:   2,
		BitDepth:   32,
	}
}

// FloatToInt16 converts a float sample to 16-bit PCM, clipping outside [-1, 1]
func FloatToInt16(sample float32) int16 {
	if sample >= 1 {
		return MaxInt16
	}
	if sample <= -1 {
		return -MaxInt16
	}
	return int16(sample * MaxInt16)
}

// Int16ToFloat converts a 16-bit PCM sample to float in [-1, 1]
func Int16ToFloat(sample int16) float32 {
	if sample == MinInt16 {
		return -1
	}
	return float32(sample) / MaxInt16
}

// PutFloat32LE packs samples into dst as little-endian float32 and returns
// the number of bytes written. dst must hold len(samples)*4 bytes.
func PutFloat32LE(dst []byte, samples []float32) int {
	for i, s := range samples {
		binary.LittleEndian.PutUint32(dst[i*BytesPerFloat32:], math.Float32bits(s))
	}
	return len(samples) * BytesPerFloat32
}

// PutInt16LE packs samples into dst as little-endian 16-bit PCM and returns
// the number of bytes written. dst must hold len(samples)*2 bytes.
func PutInt16LE(dst []byte, samples []float32) int {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(FloatToInt16(s)))
	}
	return len(samples) * 2
}
