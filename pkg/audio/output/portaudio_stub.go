//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
)

// PortAudio output implementation (stub)
type PortAudio struct {
	*gain
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Output {
	return &PortAudio{
		gain: newGain(),
	}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, src Source) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
