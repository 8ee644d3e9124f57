// ABOUTME: Note events passed from input goroutines to the audio goroutine
// ABOUTME: Bounded channel with non-blocking send and drain
package synth

// EventType identifies a note event
type EventType int

const (
	EventNoteOn EventType = iota
	EventNoteOff
	EventAllNotesOff
)

// Event is a control message applied at the start of the next Render call
type Event struct {
	Type EventType
	Note int
}

// send enqueues ev without blocking. A full queue drops the event.
func (e *Engine) send(ev Event) bool {
	select {
	case e.events <- ev:
		return true
	default:
		e.droppedEvents.Add(1)
		return false
	}
}

// drain applies every pending event to the registry
func (e *Engine) drain() {
	for {
		select {
		case ev := <-e.events:
			e.apply(ev)
		default:
			return
		}
	}
}

func (e *Engine) apply(ev Event) {
	switch ev.Type {
	case EventNoteOn:
		e.voices.Trigger(ev.Note)
	case EventNoteOff:
		e.voices.Release(ev.Note)
	case EventAllNotesOff:
		e.voices.ReleaseAll()
	}
}
