// ABOUTME: Raw terminal key reader for running without the TUI
// ABOUTME: Puts stdin in raw mode and routes bytes to the hold tracker
package keyboard

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Command is a non-note key action
type Command int

const (
	CommandQuit Command = iota
	CommandVolumeUp
	CommandVolumeDown
	CommandMute
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// Reader reads raw stdin and feeds key presses into a HoldTracker
type Reader struct {
	tracker  *HoldTracker
	commands chan Command

	fd           int
	oldTermState *term.State
	nonblockSet  bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// NewReader creates a reader that sends note keys to tracker
func NewReader(tracker *HoldTracker) *Reader {
	return &Reader{
		tracker:  tracker,
		commands: make(chan Command, 8),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Commands returns the channel of control key actions
func (r *Reader) Commands() <-chan Command {
	return r.commands
}

// Start puts stdin in raw mode and begins reading in a goroutine.
// Call Stop to restore the terminal.
func (r *Reader) Start() error {
	r.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		close(r.done)
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	r.oldTermState = oldState

	// Non-blocking reads let Stop join the goroutine; without them the
	// reader is left blocked in Read until the process exits
	if err := setNonblock(r.fd, true); err != nil {
		log.Printf("Keyboard: non-blocking stdin unavailable: %v", err)
	} else {
		r.nonblockSet = true
	}

	go r.loop(os.Stdin)
	return nil
}

func (r *Reader) loop(in io.Reader) {
	defer close(r.done)
	buf := make([]byte, 16)

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		n, err := in.Read(buf)
		if n > 0 {
			r.handle(buf[:n], time.Now())
		}
		if isWouldBlock(err) || (err == nil && n == 0) {
			time.Sleep(PollInterval)
			continue
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("Keyboard read error: %v", err)
			}
			r.send(CommandQuit)
			return
		}
	}
}

// handle decodes one read's worth of bytes
func (r *Reader) handle(buf []byte, now time.Time) {
	// A lone ESC is the quit key; longer ESC runs are escape sequences
	if len(buf) == 1 && buf[0] == keyEscape {
		r.send(CommandQuit)
		return
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == keyEscape && i+2 < len(buf) && buf[i+1] == '[':
			switch buf[i+2] {
			case 'A':
				r.send(CommandVolumeUp)
			case 'B':
				r.send(CommandVolumeDown)
			}
			i += 2
		case b == keyEscape, b == keyCtrlC:
			r.send(CommandQuit)
			return
		case b == 'm' || b == 'M':
			r.send(CommandMute)
		default:
			r.tracker.Press(rune(b), now)
		}
	}
}

func (r *Reader) send(cmd Command) {
	select {
	case r.commands <- cmd:
	default:
		log.Printf("Keyboard command %d dropped: channel full", cmd)
	}
}

// Stop terminates the reading goroutine and restores the terminal
func (r *Reader) Stop() {
	r.stopped.Do(func() {
		close(r.stopCh)
	})
	if r.nonblockSet {
		<-r.done
		_ = setNonblock(r.fd, false)
		r.nonblockSet = false
	}
	if r.oldTermState != nil {
		_ = term.Restore(r.fd, r.oldTermState)
		r.oldTermState = nil
	}
}

// crlfWriter turns LF into CRLF so log lines stay aligned while the
// terminal's output post-processing is disabled by raw mode
type crlfWriter struct {
	w io.Writer
}

// CRLF wraps w for use while stdin is in raw mode
func CRLF(w io.Writer) io.Writer {
	return crlfWriter{w: w}
}

func (c crlfWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == '\n' {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
