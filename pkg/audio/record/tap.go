// ABOUTME: Recording tap that captures a Source's output to WAV
// ABOUTME: Audio goroutine fills a ring buffer; a writer goroutine drains it to disk
package record

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/echosynth/pkg/audio/output"
)

const (
	// DrainInterval is how often the writer goroutine empties the ring
	DrainInterval = 50 * time.Millisecond

	// BufferSeconds is the ring capacity in seconds of audio
	BufferSeconds = 2
)

// Tap wraps a Source and records everything it renders
type Tap struct {
	src     output.Source
	ring    *RingBuffer
	wav     *WAVWriter
	chunk   []float32
	dropped atomic.Uint64
	written atomic.Uint64

	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewTap creates a recording tap in front of src
func NewTap(src output.Source, wav *WAVWriter) *Tap {
	capacity := wav.format.SampleRate * wav.format.Channels * BufferSeconds

	return &Tap{
		src:      src,
		ring:     NewRingBuffer(capacity),
		wav:      wav,
		chunk:    make([]float32, capacity),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Render renders from the wrapped source and queues a copy for the writer.
// Samples that do not fit are dropped rather than blocking the audio goroutine.
func (t *Tap) Render(out []float32) {
	t.src.Render(out)

	if n := t.ring.Write(out); n < len(out) {
		t.dropped.Add(uint64(len(out) - n))
	}
}

// Start launches the writer goroutine
func (t *Tap) Start() {
	t.started = true
	go t.run()
}

func (t *Tap) run() {
	defer close(t.done)

	ticker := time.NewTicker(DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.flush()
		case <-t.stopChan:
			t.flush()
			return
		}
	}
}

// flush writes everything currently buffered
func (t *Tap) flush() {
	for {
		n := t.ring.Read(t.chunk)
		if n == 0 {
			return
		}
		if err := t.wav.Write(t.chunk[:n]); err != nil {
			log.Printf("Recorder write error: %v", err)
			return
		}
		t.written.Add(uint64(n))
	}
}

// Dropped returns how many samples were lost because the writer lagged
func (t *Tap) Dropped() uint64 {
	return t.dropped.Load()
}

// Written returns how many samples reached the file
func (t *Tap) Written() uint64 {
	return t.written.Load()
}

// Close stops the writer, flushes remaining samples and finalizes the file
func (t *Tap) Close() error {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
	if t.started {
		<-t.done
	} else {
		t.flush()
	}

	if err := t.wav.Close(); err != nil {
		return fmt.Errorf("failed to finalize recording: %w", err)
	}

	log.Printf("Recorder closed: %d samples written, %d dropped", t.Written(), t.Dropped())
	return nil
}
