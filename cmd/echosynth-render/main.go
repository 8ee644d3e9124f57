// ABOUTME: Entry point for the offline synth renderer
// ABOUTME: Renders a chord through the synth engine into a WAV file
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	"github.com/Resonate-Protocol/echosynth/internal/version"
	"github.com/Resonate-Protocol/echosynth/pkg/synth"
)

var (
	out     = flag.String("out", "render.wav", "Output WAV file")
	notes   = flag.String("notes", "60,64,67", "Comma separated note numbers to hold")
	keys    = flag.String("keys", "", "Keyboard keys to hold instead of -notes (e.g. \"etu\")")
	hold    = flag.Duration("hold", time.Second, "How long the notes are held")
	tail    = flag.Duration("tail", 3*time.Second, "Render time after release (reverb tail)")
	rate    = flag.Int("rate", 0, "Output sample rate (default: engine rate)")
	logFile = flag.String("log-file", "echosynth-render.log", "Log file path")
)

func main() {
	flag.Parse()

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	var chord []int
	if *keys != "" {
		chord, err = notesFromKeys(*keys, keyboard.DefaultLayout())
	} else {
		chord, err = parseNotes(*notes)
	}
	if err != nil {
		log.Fatalf("Bad chord: %v", err)
	}

	log.Printf("%s render: notes %v, hold %v, tail %v", version.String(), chord, *hold, *tail)

	w, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	frames, err := render(w, renderOptions{
		Notes: chord,
		Hold:  *hold,
		Tail:  *tail,
		Rate:  *rate,
		Synth: synth.DefaultConfig(),
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	log.Printf("Wrote %d frames to %s", frames, *out)
}
