// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams float32 frames pulled from a Source through an oto player
package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Resonate-Protocol/echosynth/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using oto library.
// The oto player calls Read on its own goroutine; that is the audio callback.
type Oto struct {
	*gain

	mu      sync.Mutex
	otoCtx  *oto.Context
	player  *oto.Player
	src     Source
	format  audio.Format
	samples []float32 // preallocated render buffer
	ready   bool
}

// NewOto creates a new Oto output
func NewOto() Output {
	return &Oto{
		gain: newGain(),
	}
}

// Open initializes the output device and starts playback from src
func (o *Oto) Open(format audio.Format, src Source) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready {
		return fmt.Errorf("output already open")
	}

	if format.BitDepth != 32 {
		log.Printf("Warning: oto output streams float32, ignoring requested bitDepth=%d", format.BitDepth)
	}

	// oto only allows one context per process; reuse it across Open calls
	if o.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   time.Duration(FramesPerBuffer) * time.Second / time.Duration(format.SampleRate),
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan
		o.otoCtx = ctx
	} else if err := o.otoCtx.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}

	o.src = src
	o.format = format
	o.samples = make([]float32, FramesPerBuffer*format.Channels*4)

	o.player = o.otoCtx.NewPlayer(o)
	o.player.Play()
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels (oto/float32)",
		format.SampleRate, format.Channels)

	return nil
}

// Read fills p with rendered float32 frames. Called by the oto player.
func (o *Oto) Read(p []byte) (int, error) {
	n := len(p) / audio.BytesPerFloat32

	// Grow only when the player asks for more than ever before
	if len(o.samples) < n {
		o.samples = make([]float32, n)
	}
	samples := o.samples[:n]

	o.src.Render(samples)
	o.apply(samples)

	written := audio.PutFloat32LE(p, samples)
	clear(p[written:])

	return len(p), nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil && o.ready {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	o.ready = false
	return nil
}
