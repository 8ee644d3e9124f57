// ABOUTME: Computer-keyboard to note number layout
// ABOUTME: Case-insensitive character table for the playable keys
package keyboard

import (
	"fmt"
	"sort"
	"unicode"
)

// Layout maps upper-case characters to note numbers
type Layout map[rune]int

// DefaultLayout returns the two-row tracker-style layout (Q = C5)
func DefaultLayout() Layout {
	return Layout{
		'A': 57, 'W': 58, 'S': 59, 'E': 60, 'D': 61, 'F': 62, 'T': 63, 'G': 64,
		'Y': 65, 'H': 66, 'U': 67, 'J': 68, 'K': 69, 'O': 70, 'L': 71, 'P': 72,
		';': 73, '\'': 74, 'Q': 72, 'Z': 48, 'X': 50, 'C': 52, 'V': 53, 'B': 55, 'N': 57,
	}
}

// Note returns the note for r, ignoring case
func (l Layout) Note(r rune) (int, bool) {
	note, ok := l[unicode.ToUpper(r)]
	return note, ok
}

// Keys returns the mapped characters in note order
func (l Layout) Keys() []rune {
	keys := make([]rune, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if l[keys[i]] != l[keys[j]] {
			return l[keys[i]] < l[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a note (60 = C4)
func NoteName(note int) string {
	if note < 0 {
		return fmt.Sprintf("?%d", note)
	}
	return fmt.Sprintf("%s%d", noteNames[note%12], note/12-1)
}
