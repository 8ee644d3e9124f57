// ABOUTME: 16-bit PCM WAV file writer
// ABOUTME: Writes a RIFF header up front and patches sizes on Close
package record

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
)

const wavHeaderSize = 44

// WAVWriter encodes float32 samples as 16-bit PCM WAV
type WAVWriter struct {
	w         io.WriteSeeker
	format    audio.Format
	dataBytes uint32
	buf       []byte
}

// NewWAVWriter writes a placeholder header and returns a writer.
// Only the sample rate and channel count of format are used; output is 16-bit.
func NewWAVWriter(w io.WriteSeeker, format audio.Format) (*WAVWriter, error) {
	if format.Channels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("invalid WAV format: %dHz %d channels", format.SampleRate, format.Channels)
	}

	ww := &WAVWriter{
		w: w,
		format: audio.Format{
			SampleRate: format.SampleRate,
			Channels:   format.Channels,
			BitDepth:   16,
		},
	}
	if err := ww.writeHeader(); err != nil {
		return nil, err
	}
	return ww, nil
}

// Write encodes samples and appends them to the data chunk
func (ww *WAVWriter) Write(samples []float32) error {
	need := len(samples) * 2
	if cap(ww.buf) < need {
		ww.buf = make([]byte, need)
	}
	buf := ww.buf[:need]
	audio.PutInt16LE(buf, samples)

	n, err := ww.w.Write(buf)
	ww.dataBytes += uint32(n)
	if err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}

// DataBytes returns the size of the data chunk written so far
func (ww *WAVWriter) DataBytes() uint32 {
	return ww.dataBytes
}

// Close patches the RIFF and data chunk sizes
func (ww *WAVWriter) Close() error {
	if _, err := ww.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to header: %w", err)
	}
	if err := ww.writeHeader(); err != nil {
		return err
	}
	if _, err := ww.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	return nil
}

func (ww *WAVWriter) writeHeader() error {
	channels := uint16(ww.format.Channels)
	rate := uint32(ww.format.SampleRate)
	blockAlign := uint16(ww.format.FrameSize())

	h := make([]byte, wavHeaderSize)
	copy(h[0:], "RIFF")
	binary.LittleEndian.PutUint32(h[4:], 36+ww.dataBytes)
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(h[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(h[22:], channels)
	binary.LittleEndian.PutUint32(h[24:], rate)
	binary.LittleEndian.PutUint32(h[28:], rate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:], blockAlign)
	binary.LittleEndian.PutUint16(h[34:], 16)
	copy(h[36:], "data")
	binary.LittleEndian.PutUint32(h[40:], ww.dataBytes)

	if _, err := ww.w.Write(h); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	return nil
}
