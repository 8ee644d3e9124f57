// ABOUTME: Offline rendering of a held chord to a WAV file
// ABOUTME: Drives the engine block by block, optionally resampling the result
package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	"github.com/Resonate-Protocol/echosynth/pkg/audio"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/output"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/record"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/resample"
	"github.com/Resonate-Protocol/echosynth/pkg/synth"
)

type renderOptions struct {
	Notes []int
	Hold  time.Duration
	Tail  time.Duration
	Rate  int // output rate, 0 keeps the engine rate
	Synth synth.Config
}

// renderer pulls blocks from the engine and writes them to the WAV writer
type renderer struct {
	engine *synth.Engine
	wav    *record.WAVWriter
	rs     *resample.Resampler
	buf    []float32
	rsBuf  []float32
	frames int
}

// render plays opts.Notes for opts.Hold, releases them, renders opts.Tail
// and returns the number of frames written
func render(w io.WriteSeeker, opts renderOptions) (int, error) {
	engine := synth.New(opts.Synth)
	sr := engine.SampleRate()

	outRate := opts.Rate
	if outRate == 0 {
		outRate = sr
	}

	wav, err := record.NewWAVWriter(w, audio.Stereo(outRate))
	if err != nil {
		return 0, err
	}

	r := &renderer{
		engine: engine,
		wav:    wav,
		buf:    make([]float32, output.FramesPerBuffer*synth.DefaultChannels),
	}
	if outRate != sr {
		r.rs = resample.New(sr, outRate, synth.DefaultChannels)
		r.rsBuf = make([]float32, r.rs.OutputSamplesNeeded(len(r.buf)))
	}

	for _, n := range opts.Notes {
		engine.NoteOn(n)
	}
	if err := r.run(framesFor(opts.Hold, sr)); err != nil {
		return r.frames, err
	}

	engine.AllNotesOff()
	if err := r.run(framesFor(opts.Tail, sr)); err != nil {
		return r.frames, err
	}

	if err := wav.Close(); err != nil {
		return r.frames, err
	}
	return r.frames, nil
}

func (r *renderer) run(frames int) error {
	for frames > 0 {
		n := min(frames, len(r.buf)/synth.DefaultChannels)
		block := r.buf[:n*synth.DefaultChannels]
		r.engine.Render(block)
		frames -= n

		if r.rs != nil {
			m := r.rs.Resample(block, r.rsBuf)
			block = r.rsBuf[:m]
		}
		if err := r.wav.Write(block); err != nil {
			return err
		}
		r.frames += len(block) / synth.DefaultChannels
	}
	return nil
}

func framesFor(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// parseNotes reads a comma separated list of note numbers
func parseNotes(s string) ([]int, error) {
	var notes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid note %q: %w", field, err)
		}
		if n < 0 || n >= synth.MaxNotes {
			return nil, fmt.Errorf("note %d out of range 0-%d", n, synth.MaxNotes-1)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// notesFromKeys maps computer keys to notes with the playing layout
func notesFromKeys(keys string, layout keyboard.Layout) ([]int, error) {
	var notes []int
	for _, k := range keys {
		n, ok := layout.Note(k)
		if !ok {
			return nil, fmt.Errorf("key %q is not on the keyboard", k)
		}
		notes = append(notes, n)
	}
	return notes, nil
}
