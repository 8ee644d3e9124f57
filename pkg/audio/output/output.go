// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for callback-driven playback backends
package output

import (
	"fmt"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
)

// FramesPerBuffer is the requested device buffer size in frames
const FramesPerBuffer = 256

// Source produces interleaved float32 samples on demand.
// Render is called from the device's audio goroutine and must not block.
type Source interface {
	Render(out []float32)
}

// Output represents an audio output device that pulls from a Source
type Output interface {
	// Open initializes the device and starts pulling from src
	Open(format audio.Format, src Source) error

	// Close stops the stream and releases device resources
	Close() error

	// SetVolume sets the output trim (0-100)
	SetVolume(volume int)

	// SetMuted sets mute state
	SetMuted(muted bool)

	// GetVolume returns the current output trim
	GetVolume() int

	// IsMuted returns mute state
	IsMuted() bool
}

// Backends lists the selectable backend names, default first
var Backends = []string{"oto", "malgo", "portaudio"}

// NewBackend creates an output by name
func NewBackend(name string) (Output, error) {
	switch name {
	case "", "oto":
		return NewOto(), nil
	case "malgo":
		return NewMalgo(), nil
	case "portaudio":
		return NewPortAudio(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (available: %v)", name, Backends)
	}
}
