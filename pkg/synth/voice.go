// ABOUTME: Voice state and the note-keyed voice registry
// ABOUTME: Fixed 128-slot table with an allocation-free active list
package synth

// MaxNotes is the number of addressable note numbers (0..127)
const MaxNotes = 128

// Voice represents one sounding note
type Voice struct {
	note    int
	time    float64 // seconds since trigger
	stage   Stage
	level   float64 // envelope value in [0, 1]
	keyDown bool
}

// Note returns the note number
func (v *Voice) Note() int { return v.note }

// Stage returns the current envelope stage
func (v *Voice) Stage() Stage { return v.stage }

// Envelope returns the current envelope value
func (v *Voice) Envelope() float64 { return v.level }

// Time returns the seconds elapsed since the last trigger
func (v *Voice) Time() float64 { return v.time }

// KeyDown reports whether the key for this voice is held
func (v *Voice) KeyDown() bool { return v.keyDown }

// Active reports whether the voice contributes to the mix
func (v *Voice) Active() bool { return v.stage != StageOff }

// VoiceInfo is a snapshot of a voice for display and tests
type VoiceInfo struct {
	Note     int
	Stage    Stage
	Envelope float64
	KeyDown  bool
}

// Registry owns every voice, keyed by note number.
// It is not safe for concurrent use; the Engine confines it to the audio goroutine.
type Registry struct {
	voices [MaxNotes]Voice
	active []int // note numbers of non-OFF voices, in trigger order
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{
		active: make([]int, 0, MaxNotes),
	}
	for i := range r.voices {
		r.voices[i].note = i
	}
	return r
}

// Trigger starts or retriggers the voice for note.
// A retrigger restarts ATTACK from the current envelope value.
func (r *Registry) Trigger(note int) bool {
	if note < 0 || note >= MaxNotes {
		return false
	}

	v := &r.voices[note]
	if v.stage == StageOff {
		v.level = 0
		if !r.listed(note) {
			r.active = append(r.active, note)
		}
	}
	v.stage = StageAttack
	v.time = 0
	v.keyDown = true
	return true
}

// Release moves a sounding voice to RELEASE. OFF voices are left alone.
func (r *Registry) Release(note int) bool {
	if note < 0 || note >= MaxNotes {
		return false
	}

	v := &r.voices[note]
	v.keyDown = false
	if v.stage == StageOff {
		return false
	}
	v.stage = StageRelease
	return true
}

// ReleaseAll moves every sounding voice to RELEASE
func (r *Registry) ReleaseAll() {
	for _, note := range r.active {
		r.Release(note)
	}
}

// Voice returns the voice slot for note, or nil when out of range
func (r *Registry) Voice(note int) *Voice {
	if note < 0 || note >= MaxNotes {
		return nil
	}
	return &r.voices[note]
}

// Len returns the number of non-OFF voices
func (r *Registry) Len() int {
	return len(r.active)
}

// Active returns the note numbers of sounding voices.
// The slice is owned by the registry and valid until the next mutation.
func (r *Registry) Active() []int {
	return r.active
}

// Retire drops OFF voices from the active list, keeping order
func (r *Registry) Retire() {
	kept := r.active[:0]
	for _, note := range r.active {
		if r.voices[note].stage != StageOff {
			kept = append(kept, note)
		}
	}
	r.active = kept
}

// listed reports whether note is still in the active list (OFF but not yet retired)
func (r *Registry) listed(note int) bool {
	for _, n := range r.active {
		if n == note {
			return true
		}
	}
	return false
}

// Snapshot appends a VoiceInfo for each sounding voice to dst
func (r *Registry) Snapshot(dst []VoiceInfo) []VoiceInfo {
	for _, note := range r.active {
		v := &r.voices[note]
		dst = append(dst, VoiceInfo{
			Note:     v.note,
			Stage:    v.stage,
			Envelope: v.level,
			KeyDown:  v.keyDown,
		})
	}
	return dst
}
