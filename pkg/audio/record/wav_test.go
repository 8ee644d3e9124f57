// ABOUTME: Tests for the WAV writer
// ABOUTME: Verifies header fields and size patching on close
package record

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
)

func readWAV(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if len(data) < wavHeaderSize {
		t.Fatalf("file too short: %d bytes", len(data))
	}
	return data
}

func TestWAVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	ww, err := NewWAVWriter(f, audio.Stereo(44100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ww.Write([]float32{0, 0.5, -0.5, 1}); err != nil {
		t.Fatal(err)
	}
	if err := ww.Write([]float32{2, -2}); err != nil {
		t.Fatal(err)
	}
	if err := ww.Close(); err != nil {
		t.Fatal(err)
	}

	data := readWAV(t, path)

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Fatal("expected RIFF/WAVE/data markers")
	}
	if got := binary.LittleEndian.Uint32(data[40:]); got != 12 {
		t.Errorf("expected data size 12, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[4:]); got != 48 {
		t.Errorf("expected RIFF size 48, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:]); got != 2 {
		t.Errorf("expected 2 channels, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:]); got != 44100 {
		t.Errorf("expected 44100Hz, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:]); got != 16 {
		t.Errorf("expected 16-bit, got %d", got)
	}
	if len(data) != wavHeaderSize+12 {
		t.Errorf("expected %d bytes, got %d", wavHeaderSize+12, len(data))
	}

	want := []int16{0, 16383, -16383, 32767, 32767, -32767}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(data[wavHeaderSize+i*2:]))
		if got != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestWAVWriterInvalidFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := NewWAVWriter(f, audio.Format{}); err == nil {
		t.Error("expected error for empty format")
	}
}
