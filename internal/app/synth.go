// ABOUTME: Main synth application orchestration
// ABOUTME: Coordinates engine, output backend, recorder, keyboard and UI
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	"github.com/Resonate-Protocol/echosynth/internal/ui"
	"github.com/Resonate-Protocol/echosynth/pkg/audio"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/output"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/record"
	"github.com/Resonate-Protocol/echosynth/pkg/synth"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// VolumeStep is the volume change per up/down key
const VolumeStep = 5

// StatsInterval is how often the TUI receives engine stats
const StatsInterval = 500 * time.Millisecond

// Config holds synth application configuration
type Config struct {
	Backend     string
	UseTUI      bool
	Record      bool
	RecordPath  string
	HoldTimeout time.Duration
	Volume      int
	Synth       synth.Config
}

// Synth represents the main synth application
type Synth struct {
	config    Config
	sessionID string

	engine  *synth.Engine
	tracker *keyboard.HoldTracker
	layout  keyboard.Layout
	output  output.Output
	tap     *record.Tap
	recFile *os.File

	reader     *keyboard.Reader
	volumeCtrl *ui.VolumeControl
	tuiProg    *tea.Program

	newOutput func(name string) (output.Output, error)

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	quit     chan struct{}
	quitOnce sync.Once
	stopOnce sync.Once
}

// New creates a new synth application
func New(config Config) *Synth {
	if config.Volume == 0 {
		config.Volume = 100
	}
	if config.HoldTimeout <= 0 {
		config.HoldTimeout = keyboard.DefaultHoldTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	engine := synth.New(config.Synth)
	layout := keyboard.DefaultLayout()

	return &Synth{
		config:    config,
		sessionID: uuid.New().String(),
		engine:    engine,
		layout:    layout,
		tracker:   keyboard.NewHoldTracker(layout, engine, config.HoldTimeout),
		newOutput: output.NewBackend,
		ctx:       ctx,
		cancel:    cancel,
		quit:      make(chan struct{}),
	}
}

// SessionID returns the id of this run
func (s *Synth) SessionID() string {
	return s.sessionID
}

// Engine returns the synthesis engine
func (s *Synth) Engine() *synth.Engine {
	return s.engine
}

// RecordingPath returns the WAV path used when recording
func (s *Synth) RecordingPath() string {
	if s.config.RecordPath != "" {
		return s.config.RecordPath
	}
	return fmt.Sprintf("echosynth-%s.wav", s.sessionID)
}

// Done is closed when the user asks to quit
func (s *Synth) Done() <-chan struct{} {
	return s.quit
}

// Start opens the audio output and starts the key input
func (s *Synth) Start() error {
	if err := s.startAudio(); err != nil {
		s.Stop()
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.tracker.Run(s.ctx)
	}()

	if err := s.startInput(); err != nil {
		s.Stop()
		return err
	}

	return nil
}

// startAudio builds the source chain and opens the backend
func (s *Synth) startAudio() error {
	format := audio.Stereo(s.engine.SampleRate())

	var src output.Source = s.engine
	if s.config.Record {
		path := s.RecordingPath()
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create recording file: %w", err)
		}
		wav, err := record.NewWAVWriter(f, format)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to start recording: %w", err)
		}
		s.recFile = f
		s.tap = record.NewTap(s.engine, wav)
		s.tap.Start()
		src = s.tap
		log.Printf("Recording to %s", path)
	}

	out, err := s.newOutput(s.config.Backend)
	if err != nil {
		return err
	}
	out.SetVolume(s.config.Volume)

	if err := out.Open(format, src); err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	s.output = out

	log.Printf("Audio started: backend=%s %dHz %dch", backendName(s.config.Backend), format.SampleRate, format.Channels)
	return nil
}

// startInput starts either the TUI or the raw terminal reader
func (s *Synth) startInput() error {
	if s.config.UseTUI {
		s.volumeCtrl = ui.NewVolumeControl()
		prog, err := ui.Run(ui.Config{
			Keys:       s.tracker,
			VolumeCtrl: s.volumeCtrl,
			Layout:     s.layout,
			Volume:     s.config.Volume,
		})
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		s.tuiProg = prog

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := prog.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			s.requestQuit()
		}()

		go s.handleVolumeControl()
		go s.statsUpdateLoop()
		return nil
	}

	s.reader = keyboard.NewReader(s.tracker)
	if err := s.reader.Start(); err != nil {
		return fmt.Errorf("failed to start keyboard: %w", err)
	}
	go s.handleCommands()
	return nil
}

// handleCommands processes control keys from the raw reader
func (s *Synth) handleCommands() {
	for {
		select {
		case cmd := <-s.reader.Commands():
			s.handleCommand(cmd)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Synth) handleCommand(cmd keyboard.Command) {
	switch cmd {
	case keyboard.CommandQuit:
		log.Printf("Quit requested")
		s.requestQuit()
	case keyboard.CommandVolumeUp:
		s.output.SetVolume(s.output.GetVolume() + VolumeStep)
	case keyboard.CommandVolumeDown:
		s.output.SetVolume(s.output.GetVolume() - VolumeStep)
	case keyboard.CommandMute:
		s.output.SetMuted(!s.output.IsMuted())
	}
}

// handleVolumeControl processes volume changes from TUI
func (s *Synth) handleVolumeControl() {
	for {
		select {
		case vol := <-s.volumeCtrl.Changes:
			s.applyVolume(vol)
		case <-s.volumeCtrl.Quit:
			log.Printf("Received quit signal from TUI")
			s.requestQuit()
			return
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Synth) applyVolume(vol ui.VolumeChangeMsg) {
	log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
	s.output.SetVolume(vol.Volume)
	s.output.SetMuted(vol.Muted)
}

// statsUpdateLoop periodically updates TUI with engine statistics
func (s *Synth) statsUpdateLoop() {
	status := s.status()
	s.tuiProg.Send(status)

	ticker := time.NewTicker(StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tuiProg.Send(s.status())
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Synth) status() ui.StatusMsg {
	stats := s.engine.Stats()
	msg := ui.StatusMsg{
		Backend:      backendName(s.config.Backend),
		SampleRate:   s.engine.SampleRate(),
		ActiveVoices: stats.ActiveVoices,
		Frames:       stats.Frames,
		Dropped:      stats.DroppedEvents,
	}
	if s.tap != nil {
		msg.Recording = s.RecordingPath()
	}
	return msg
}

func (s *Synth) requestQuit() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
}

// Stop shuts everything down in order: input, notes, output, recorder
func (s *Synth) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()

		if s.reader != nil {
			s.reader.Stop()
		}
		if s.tuiProg != nil {
			s.tuiProg.Quit()
		}

		s.tracker.ReleaseAll()
		s.engine.Stop()

		if s.output != nil {
			if err := s.output.Close(); err != nil {
				log.Printf("Error closing output: %v", err)
			}
		}

		if s.tap != nil {
			if err := s.tap.Close(); err != nil {
				log.Printf("Error closing recorder: %v", err)
			}
		}
		if s.recFile != nil {
			if err := s.recFile.Close(); err != nil {
				log.Printf("Error closing recording file: %v", err)
			}
		}

		s.wg.Wait()

		stats := s.engine.Stats()
		log.Printf("Synth stopped: %d frames rendered, %d events dropped", stats.Frames, stats.DroppedEvents)
	})
}

func backendName(name string) string {
	if name == "" {
		return output.Backends[0]
	}
	return name
}
