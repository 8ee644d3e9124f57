// ABOUTME: Entry point for the echosynth keyboard synthesizer
// ABOUTME: Parses CLI flags, sets up logging and runs the synth until quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/app"
	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	"github.com/Resonate-Protocol/echosynth/internal/version"
	"github.com/Resonate-Protocol/echosynth/pkg/audio/output"
	"github.com/Resonate-Protocol/echosynth/pkg/synth"
)

var (
	backend    = flag.String("backend", "oto", fmt.Sprintf("Audio backend %v", output.Backends))
	logFile    = flag.String("log-file", "echosynth.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, read raw keys and stream logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
	record     = flag.Bool("record", false, "Record the output to a WAV file")
	recordPath = flag.String("record-path", "", "WAV file path (default: echosynth-<session>.wav)")
	holdMs     = flag.Int("hold-ms", int(keyboard.DefaultHoldTimeout/time.Millisecond), "Release a key this long after its last repeat")
	volume     = flag.Int("volume", 100, "Initial output volume (0-100)")
)

func main() {
	flag.Parse()

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: stdout is in raw mode, so lines need CR
		multiWriter := io.MultiWriter(keyboard.CRLF(os.Stdout), f)
		log.SetOutput(multiWriter)
	}

	printBanner()
	log.Printf("Starting %s", version.String())

	s := app.New(app.Config{
		Backend:     *backend,
		UseTUI:      useTUI,
		Record:      *record || *recordPath != "",
		RecordPath:  *recordPath,
		HoldTimeout: time.Duration(*holdMs) * time.Millisecond,
		Volume:      *volume,
		Synth:       synth.DefaultConfig(),
	})

	if err := s.Start(); err != nil {
		log.Fatalf("Failed to start synth: %v", err)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-s.Done():
		log.Printf("Quit requested")
	case <-sigChan:
		log.Printf("Shutdown signal received")
	}

	s.Stop()
	log.Printf("Goodbye")
}

func printBanner() {
	fmt.Printf("%s %s - Analog Synth Ready\n", version.Product, version.Version)
	fmt.Println("Play with the letter keys (Q = C5, Z = C3)")
	fmt.Println("Press ESC to quit")
}
