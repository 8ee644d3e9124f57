// ABOUTME: Key-up inference for terminals that only report key presses
// ABOUTME: Holds notes while auto-repeat keeps arriving and releases on timeout
package keyboard

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

const (
	// PollInterval is how often held keys are checked for release
	PollInterval = 30 * time.Millisecond

	// DefaultHoldTimeout covers the usual auto-repeat initial delay
	DefaultHoldTimeout = 600 * time.Millisecond
)

// NoteSink receives note events (the synth engine)
type NoteSink interface {
	NoteOn(note int) bool
	NoteOff(note int) bool
}

// HoldTracker turns a stream of key presses into note-on/note-off pairs.
// A press of a held key only refreshes it, so auto-repeat does not retrigger.
type HoldTracker struct {
	mu      sync.Mutex
	layout  Layout
	sink    NoteSink
	timeout time.Duration
	held    map[int]time.Time // note -> last press
}

// NewHoldTracker creates a tracker sending events to sink
func NewHoldTracker(layout Layout, sink NoteSink, timeout time.Duration) *HoldTracker {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HoldTracker{
		layout:  layout,
		sink:    sink,
		timeout: timeout,
		held:    make(map[int]time.Time),
	}
}

// Press handles a key press at now. Mapped keys start or refresh a note;
// any other key releases every held note.
func (h *HoldTracker) Press(r rune, now time.Time) (int, bool) {
	note, ok := h.layout.Note(r)
	if !ok {
		h.ReleaseAll()
		return 0, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, held := h.held[note]; !held {
		if !h.sink.NoteOn(note) {
			log.Printf("Note on %d dropped: event queue full", note)
		}
	}
	h.held[note] = now
	return note, true
}

// Poll releases notes whose last press is older than the hold timeout
// and returns how many were released
func (h *HoldTracker) Poll(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	released := 0
	for note, last := range h.held {
		if now.Sub(last) >= h.timeout {
			h.release(note)
			released++
		}
	}
	return released
}

// ReleaseAll releases every held note and returns how many there were
func (h *HoldTracker) ReleaseAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	released := len(h.held)
	for note := range h.held {
		h.release(note)
	}
	return released
}

// release must hold h.mu
func (h *HoldTracker) release(note int) {
	delete(h.held, note)
	if !h.sink.NoteOff(note) {
		log.Printf("Note off %d dropped: event queue full", note)
	}
}

// Held returns the held notes in ascending order
func (h *HoldTracker) Held() []int {
	h.mu.Lock()
	defer h.mu.Unlock()

	notes := make([]int, 0, len(h.held))
	for note := range h.held {
		notes = append(notes, note)
	}
	sort.Ints(notes)
	return notes
}

// Run polls for releases every PollInterval until ctx is done,
// then releases whatever is still held
func (h *HoldTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			h.Poll(now)
		case <-ctx.Done():
			h.ReleaseAll()
			return
		}
	}
}
