// ABOUTME: Real-time polyphonic synthesis core
// ABOUTME: Voices, ADSR envelopes, detuned saw bank, mixer and feedback reverb
// Package synth turns note-on/note-off events into an interleaved stereo
// float32 stream.
//
// An Engine owns every piece of mutable state: the voice registry, the
// reverb delay line and the running flag. Input goroutines only enqueue
// events; the audio goroutine drains them at the start of each Render call,
// so the per-frame path needs no locks and does not allocate.
//
// Example:
//
//	engine := synth.New(synth.DefaultConfig())
//	engine.NoteOn(60)
//
//	buf := make([]float32, 512) // 256 stereo frames
//	engine.Render(buf)
//
//	engine.NoteOff(60)
package synth
