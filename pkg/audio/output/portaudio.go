//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform callback stream using PortAudio
package output

import (
	"fmt"
	"log"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation
type PortAudio struct {
	*gain

	stream *portaudio.Stream
	src    Source
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Output {
	return &PortAudio{
		gain: newGain(),
	}
}

// Open initializes PortAudio and starts a callback stream pulling from src
func (p *PortAudio) Open(format audio.Format, src Source) error {
	if p.stream != nil {
		return fmt.Errorf("output already open")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.src = src
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), FramesPerBuffer, p.callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	log.Printf("Audio output initialized: %dHz, %d channels (portaudio/float32)",
		format.SampleRate, format.Channels)

	return nil
}

// callback is invoked by PortAudio with an interleaved output buffer
func (p *PortAudio) callback(out []float32) {
	p.src.Render(out)
	p.apply(out)
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream == nil {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	p.stream = nil
	return portaudio.Terminate()
}
