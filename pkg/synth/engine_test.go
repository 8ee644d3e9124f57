// ABOUTME: Tests for the synthesis engine and callback driver
// ABOUTME: End-to-end note lifecycles, polyphony bounds and event queue behavior
package synth

import (
	"math"
	"testing"
)

// dryConfig disables the reverb so rendered samples equal the mixer output
func dryConfig() Config {
	cfg := DefaultConfig()
	cfg.ReverbFeedback = 0
	return cfg
}

func voiceFor(e *Engine, note int) (VoiceInfo, bool) {
	for _, v := range e.Voices() {
		if v.Note == note {
			return v, true
		}
	}
	return VoiceInfo{}, false
}

func TestEngineSilentWithoutNotes(t *testing.T) {
	e := New(DefaultConfig())
	buf := make([]float32, 512)

	for i := 0; i < 10; i++ {
		e.Render(buf)
		for j, s := range buf {
			if s != 0 {
				t.Fatalf("render %d sample %d: expected silence, got %f", i, j, s)
			}
		}
	}

	if e.Stats().ActiveVoices != 0 {
		t.Errorf("expected no active voices, got %d", e.Stats().ActiveVoices)
	}
	if e.voices.Voice(60).Stage() != StageOff {
		t.Errorf("expected untouched voice to stay OFF")
	}
}

func TestEngineStereoDuplicated(t *testing.T) {
	e := New(DefaultConfig())
	e.NoteOn(69)

	buf := make([]float32, 1024)
	e.Render(buf)

	nonZero := false
	for i := 0; i < len(buf); i += 2 {
		if buf[i] != buf[i+1] {
			t.Fatalf("frame %d: expected identical channels, got %f/%f", i/2, buf[i], buf[i+1])
		}
		if buf[i] != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("expected sound from a triggered voice")
	}
	if got := e.Stats().Frames; got != 512 {
		t.Errorf("expected 512 frames rendered, got %d", got)
	}
}

func TestEngineOddBufferTail(t *testing.T) {
	e := New(DefaultConfig())
	e.NoteOn(60)

	buf := make([]float32, 7)
	buf[6] = 99
	e.Render(buf)

	if buf[6] != 0 {
		t.Errorf("expected trailing sample zeroed, got %f", buf[6])
	}
}

func TestEngineNoteLifecycle(t *testing.T) {
	cfg := dryConfig()
	e := New(cfg)
	frame := make([]float32, 2)

	e.NoteOn(60)

	held := int(0.5 * float64(cfg.SampleRate))
	peak := 0.0
	for i := 0; i < held; i++ {
		e.Render(frame)
		v, ok := voiceFor(e, 60)
		if !ok {
			t.Fatalf("frame %d: voice disappeared while held", i)
		}
		if v.Envelope < 0 || v.Envelope > 1 {
			t.Fatalf("frame %d: envelope %f out of range", i, v.Envelope)
		}
		peak = math.Max(peak, v.Envelope)
	}

	if peak != 1.0 {
		t.Errorf("expected envelope to reach 1.0 during attack, peak %f", peak)
	}
	v, _ := voiceFor(e, 60)
	if v.Stage != StageSustain || v.Envelope != cfg.SustainLevel {
		t.Fatalf("expected sustain at %f before release, got %v at %f", cfg.SustainLevel, v.Stage, v.Envelope)
	}

	e.NoteOff(60)

	limit := int(cfg.ReleaseTime*float64(cfg.SampleRate)) + 1
	prev := v.Envelope
	released := -1
	for i := 0; i <= limit; i++ {
		e.Render(frame)
		v, ok := voiceFor(e, 60)
		if !ok {
			released = i
			break
		}
		if v.Stage != StageRelease {
			t.Fatalf("frame %d: expected release, got %v", i, v.Stage)
		}
		if v.Envelope >= prev {
			t.Fatalf("frame %d: expected strictly decreasing release", i)
		}
		prev = v.Envelope
	}
	if released < 0 {
		t.Fatalf("expected voice to finish within %d frames", limit)
	}

	buf := make([]float32, 4096)
	e.Render(buf)
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d: expected silence after release, got %f", i, s)
		}
	}
	if e.Stats().ActiveVoices != 0 {
		t.Errorf("expected no active voices, got %d", e.Stats().ActiveVoices)
	}
}

func TestEngineImmediateRelease(t *testing.T) {
	cfg := dryConfig()
	e := New(cfg)
	frame := make([]float32, 2)

	e.NoteOn(64)
	for i := 0; i < 100; i++ {
		e.Render(frame)
	}
	v, _ := voiceFor(e, 64)
	if v.Stage != StageAttack || v.Envelope <= 0 {
		t.Fatalf("expected rising attack, got %v at %f", v.Stage, v.Envelope)
	}

	e.NoteOff(64)
	limit := int(cfg.ReleaseTime*float64(cfg.SampleRate)) + 1
	for i := 0; i <= limit; i++ {
		e.Render(frame)
		if _, ok := voiceFor(e, 64); !ok {
			return
		}
	}
	t.Errorf("expected voice released from attack to finish within %d frames", limit)
}

func TestEngineSingleVoiceMatchesMixer(t *testing.T) {
	cfg := dryConfig()
	e := New(cfg)
	e.NoteOn(69)

	// Run past attack and decay into sustain
	warm := make([]float32, 2*int(0.2*float64(cfg.SampleRate)))
	e.Render(warm)

	// Reference voice sharing the engine's state at the next tick
	v := *e.voices.Voice(69)
	v.time += e.dt
	expected := e.bank.Render(&v, MidiToFreq(69)) * cfg.Volume

	frame := make([]float32, 2)
	e.Render(frame)
	if math.Abs(float64(frame[0])-expected) > 1e-6 {
		t.Errorf("expected %f, got %f", expected, frame[0])
	}
}

func TestEnginePolyphonyBounded(t *testing.T) {
	cfg := dryConfig()
	e := New(cfg)
	e.NoteOn(60)
	e.NoteOn(64)

	buf := make([]float32, 2*cfg.SampleRate/2)
	e.Render(buf)

	if e.Stats().ActiveVoices != 2 {
		t.Fatalf("expected 2 active voices, got %d", e.Stats().ActiveVoices)
	}

	bound := float32(cfg.Volume) + 1e-6
	for i, s := range buf {
		if s > bound || s < -bound {
			t.Fatalf("sample %d: expected |s| <= %f, got %f", i, bound, s)
		}
	}
}

func TestEngineEventQueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EventQueueSize = 2
	e := New(cfg)

	if !e.NoteOn(60) || !e.NoteOn(62) {
		t.Fatal("expected first two events to be queued")
	}
	if e.NoteOn(64) {
		t.Error("expected third event to be dropped")
	}
	if got := e.Stats().DroppedEvents; got != 1 {
		t.Errorf("expected 1 dropped event, got %d", got)
	}

	e.Render(make([]float32, 2))
	if e.Stats().ActiveVoices != 2 {
		t.Errorf("expected 2 voices after drain, got %d", e.Stats().ActiveVoices)
	}
	if !e.NoteOn(64) {
		t.Error("expected queue to accept events after drain")
	}
}

func TestEngineRejectsOutOfRangeNotes(t *testing.T) {
	e := New(DefaultConfig())

	if e.NoteOn(-1) || e.NoteOn(MaxNotes) || e.NoteOff(200) {
		t.Error("expected out-of-range notes to be rejected")
	}
}

func TestEngineAllNotesOff(t *testing.T) {
	e := New(dryConfig())
	e.NoteOn(60)
	e.NoteOn(67)
	e.Render(make([]float32, 64))

	e.AllNotesOff()
	e.Render(make([]float32, 2))

	for _, v := range e.Voices() {
		if v.Stage != StageRelease || v.KeyDown {
			t.Errorf("note %d: expected release with key up, got %v", v.Note, v.Stage)
		}
	}
}

func TestEngineStopRendersSilence(t *testing.T) {
	e := New(DefaultConfig())
	e.NoteOn(60)
	e.Render(make([]float32, 256))

	e.Stop()
	if e.Running() {
		t.Fatal("expected engine to stop")
	}

	buf := []float32{1, 1, 1, 1}
	e.Render(buf)
	for i, s := range buf {
		if s != 0 {
			t.Errorf("sample %d: expected silence after stop, got %f", i, s)
		}
	}
}

func TestEngineZeroConfigDefaults(t *testing.T) {
	e := New(Config{})
	cfg := e.Config()

	if cfg.SampleRate != DefaultSampleRate {
		t.Errorf("expected sample rate %d, got %d", DefaultSampleRate, cfg.SampleRate)
	}
	if e.reverb.Len() != int(DefaultDelaySeconds*DefaultSampleRate) {
		t.Errorf("expected delay of %d samples, got %d", int(DefaultDelaySeconds*DefaultSampleRate), e.reverb.Len())
	}
	if e.bank.Size() != DefaultBankSize {
		t.Errorf("expected bank size %d, got %d", DefaultBankSize, e.bank.Size())
	}
}

func BenchmarkEngineRender(b *testing.B) {
	e := New(DefaultConfig())
	for _, n := range []int{57, 60, 64, 67} {
		e.NoteOn(n)
	}
	buf := make([]float32, 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Render(buf)
	}
}
