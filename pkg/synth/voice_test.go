// ABOUTME: Tests for the voice registry
// ABOUTME: Tests trigger, retrigger, release and retirement of voices
package synth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryTrigger(t *testing.T) {
	r := NewRegistry()

	if !r.Trigger(60) {
		t.Fatal("expected trigger of note 60 to succeed")
	}

	v := r.Voice(60)
	if v.Stage() != StageAttack {
		t.Errorf("expected attack, got %v", v.Stage())
	}
	if !v.KeyDown() {
		t.Error("expected key down after trigger")
	}
	if v.Time() != 0 || v.Envelope() != 0 {
		t.Errorf("expected fresh voice at t=0 env=0, got t=%f env=%f", v.Time(), v.Envelope())
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 active voice, got %d", r.Len())
	}
}

func TestRegistryOutOfRange(t *testing.T) {
	r := NewRegistry()

	for _, note := range []int{-1, MaxNotes, 1000} {
		if r.Trigger(note) {
			t.Errorf("expected trigger of %d to be rejected", note)
		}
		if r.Release(note) {
			t.Errorf("expected release of %d to be rejected", note)
		}
		if r.Voice(note) != nil {
			t.Errorf("expected nil voice for %d", note)
		}
	}
	if r.Len() != 0 {
		t.Errorf("expected no active voices, got %d", r.Len())
	}
}

func TestRegistryRetriggerKeepsEnvelope(t *testing.T) {
	r := NewRegistry()
	r.Trigger(60)

	v := r.Voice(60)
	v.stage = StageRelease
	v.level = 0.42
	v.time = 1.5

	r.Trigger(60)

	if v.Stage() != StageAttack {
		t.Errorf("expected attack after retrigger, got %v", v.Stage())
	}
	if v.Time() != 0 {
		t.Errorf("expected time reset, got %f", v.Time())
	}
	if v.Envelope() != 0.42 {
		t.Errorf("expected envelope kept at 0.42, got %f", v.Envelope())
	}
	if r.Len() != 1 {
		t.Errorf("expected retrigger to reuse the voice, got %d active", r.Len())
	}
}

func TestRegistryReleaseOffIsNoop(t *testing.T) {
	r := NewRegistry()

	if r.Release(60) {
		t.Error("expected release of an OFF voice to report false")
	}
	if r.Voice(60).Stage() != StageOff {
		t.Errorf("expected OFF, got %v", r.Voice(60).Stage())
	}
}

func TestRegistryRetire(t *testing.T) {
	r := NewRegistry()
	r.Trigger(60)
	r.Trigger(64)
	r.Trigger(67)

	r.Voice(64).stage = StageOff
	r.Retire()

	if diff := cmp.Diff([]int{60, 67}, r.Active()); diff != "" {
		t.Errorf("active notes mismatch (-want +got):\n%s", diff)
	}

	// Retriggering an OFF voice that was not retired yet must not duplicate it
	r.Voice(67).stage = StageOff
	r.Trigger(67)
	if diff := cmp.Diff([]int{60, 67}, r.Active()); diff != "" {
		t.Errorf("active notes mismatch after retrigger (-want +got):\n%s", diff)
	}
}

func TestRegistryReleaseAllAndSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Trigger(48)
	r.Trigger(52)
	r.ReleaseAll()

	want := []VoiceInfo{
		{Note: 48, Stage: StageRelease},
		{Note: 52, Stage: StageRelease},
	}
	if diff := cmp.Diff(want, r.Snapshot(nil)); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
