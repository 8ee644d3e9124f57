// ABOUTME: Synthesis engine and per-buffer callback driver
// ABOUTME: Owns voices, reverb and transport state; renders interleaved stereo
package synth

import (
	"log"
	"sync/atomic"
)

// Engine ties the voice registry, tone generator, mixer and reverb together.
// Render must only be called from one goroutine at a time (the audio callback);
// NoteOn, NoteOff, AllNotesOff, Stop and Stats are safe from any goroutine.
type Engine struct {
	config   Config
	dt       float64
	envelope Envelope
	bank     DetuneBank
	mixer    *Mixer
	reverb   *Reverb
	voices   *Registry
	freqs    [MaxNotes]float64

	events  chan Event
	running atomic.Bool

	// Stats, published once per Render
	activeVoices  atomic.Int32
	frames        atomic.Uint64
	droppedEvents atomic.Uint64
}

// Stats is a snapshot of engine counters
type Stats struct {
	ActiveVoices  int
	Frames        uint64
	DroppedEvents uint64
}

// New creates a running engine
func New(config Config) *Engine {
	config = config.withDefaults()

	e := &Engine{
		config:   config,
		dt:       1.0 / float64(config.SampleRate),
		envelope: NewEnvelope(config),
		bank:     NewDetuneBank(config.BankSize, config.DetuneStep, config.Drive),
		mixer:    NewMixer(config.Volume),
		reverb:   NewReverb(int(config.DelaySeconds*float64(config.SampleRate)), config.ReverbFeedback),
		voices:   NewRegistry(),
		events:   make(chan Event, config.EventQueueSize),
	}
	for n := range e.freqs {
		e.freqs[n] = MidiToFreq(n)
	}
	e.running.Store(true)

	log.Printf("Synth engine created: %dHz, %d-osc bank, delay %d samples",
		config.SampleRate, e.bank.Size(), e.reverb.Len())

	return e
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.config
}

// SampleRate returns the operating sample rate
func (e *Engine) SampleRate() int {
	return e.config.SampleRate
}

// NoteOn queues a key-down for note
func (e *Engine) NoteOn(note int) bool {
	if note < 0 || note >= MaxNotes {
		return false
	}
	return e.send(Event{Type: EventNoteOn, Note: note})
}

// NoteOff queues a key-up for note
func (e *Engine) NoteOff(note int) bool {
	if note < 0 || note >= MaxNotes {
		return false
	}
	return e.send(Event{Type: EventNoteOff, Note: note})
}

// AllNotesOff queues a release of every sounding voice
func (e *Engine) AllNotesOff() bool {
	return e.send(Event{Type: EventAllNotesOff})
}

// Running reports whether the engine is still producing sound
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Stop clears the running flag; later Render calls write silence
func (e *Engine) Stop() {
	if e.running.CompareAndSwap(true, false) {
		log.Printf("Synth engine stopping")
	}
}

// Stats returns the counters published by the last Render call
func (e *Engine) Stats() Stats {
	return Stats{
		ActiveVoices:  int(e.activeVoices.Load()),
		Frames:        e.frames.Load(),
		DroppedEvents: e.droppedEvents.Load(),
	}
}

// Render fills out with interleaved stereo frames. It is the audio callback:
// pending events are applied first, then each frame advances envelopes,
// renders and mixes voices, runs the reverb and writes the same value to
// both channels.
func (e *Engine) Render(out []float32) {
	if !e.running.Load() {
		clear(out)
		return
	}

	e.drain()

	frames := len(out) / DefaultChannels
	for i := 0; i < frames; i++ {
		s := float32(e.tick())
		out[i*2] = s
		out[i*2+1] = s
	}
	if len(out)%DefaultChannels != 0 {
		out[len(out)-1] = 0
	}

	e.activeVoices.Store(int32(e.voices.Len()))
	e.frames.Add(uint64(frames))
}

// tick produces one mono sample
func (e *Engine) tick() float64 {
	e.mixer.Reset()

	finished := false
	for _, note := range e.voices.Active() {
		v := e.voices.Voice(note)
		if v.stage == StageOff {
			continue
		}

		v.time += e.dt
		if !e.envelope.Advance(v) {
			finished = true
			continue
		}

		e.mixer.Add(e.bank.Render(v, e.freqs[note]))
	}
	if finished {
		e.voices.Retire()
	}

	return e.reverb.Process(e.mixer.Mix())
}

// Voices returns a snapshot of the sounding voices.
// Only call it from the goroutine that calls Render, or after rendering stops.
func (e *Engine) Voices() []VoiceInfo {
	return e.voices.Snapshot(nil)
}
