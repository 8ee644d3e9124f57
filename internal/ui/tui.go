// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the synth keyboard UI
package ui

import (
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg reports an output volume or mute change from the UI
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg reports that the user asked to quit
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// KeyPresser receives playable key presses (the hold tracker)
type KeyPresser interface {
	Press(r rune, now time.Time) (int, bool)
	Held() []int
}

// Config holds the pieces the UI talks to
type Config struct {
	Keys       KeyPresser
	VolumeCtrl *VolumeControl
	Layout     keyboard.Layout
	Volume     int
}

// NewModel creates a new TUI model
func NewModel(config Config) Model {
	volume := config.Volume
	if volume == 0 {
		volume = 100
	}
	return Model{
		keys:       config.Keys,
		volumeCtrl: config.VolumeCtrl,
		layout:     config.Layout,
		volume:     volume,
		now:        time.Now,
	}
}

// Run creates the TUI program; the caller starts it with Run on its own goroutine
func Run(config Config) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(config), tea.WithAltScreen())
	return p, nil
}
