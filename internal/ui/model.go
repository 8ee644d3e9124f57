// ABOUTME: Bubbletea model for the synth TUI
// ABOUTME: Routes key presses to the tracker and renders voices, volume and stats
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Resonate-Protocol/echosynth/internal/keyboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RefreshInterval is how often the held-note display is refreshed
const RefreshInterval = 100 * time.Millisecond

// Model represents the TUI state
type Model struct {
	keys       KeyPresser
	volumeCtrl *VolumeControl
	layout     keyboard.Layout
	now        func() time.Time

	// Engine
	backend      string
	sampleRate   int
	activeVoices int
	frames       uint64
	dropped      uint64
	recording    string

	// Keyboard
	held []int

	// Output
	volume int
	muted  bool

	quitting bool

	// Dimensions
	width  int
	height int
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Backend      string
	SampleRate   int
	ActiveVoices int
	Frames       uint64
	Dropped      uint64
	Recording    string
}

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case tickMsg:
		m.refreshHeld()
		return m, tickEvery()
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.quitting = true
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		if m.volume < 100 {
			m.volume = min(m.volume+5, 100)
			m.sendVolume()
		}
		return m, nil
	case "down":
		if m.volume > 0 {
			m.volume = max(m.volume-5, 0)
			m.sendVolume()
		}
		return m, nil
	case "m", "M":
		m.muted = !m.muted
		m.sendVolume()
		return m, nil
	}

	if m.keys != nil && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
		now := m.now()
		for _, r := range msg.Runes {
			m.keys.Press(r, now)
		}
		m.refreshHeld()
	}

	return m, nil
}

func (m *Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

func (m *Model) refreshHeld() {
	if m.keys != nil {
		m.held = m.keys.Held()
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Backend != "" {
		m.backend = msg.Backend
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
	}
	if msg.Recording != "" {
		m.recording = msg.Recording
	}
	m.activeVoices = msg.ActiveVoices
	if msg.Frames != 0 {
		m.frames = msg.Frames
	}
	m.dropped = msg.Dropped
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	heldKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("220")).
			Padding(0, 1)
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Shutting down synth...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("echosynth"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Output: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s %dHz stereo", m.backend, m.sampleRate)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Volume: "))
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Voices: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d active, %s", m.activeVoices, m.heldNames())))
	b.WriteString("\n")

	if m.recording != "" {
		b.WriteString(headerStyle.Render("Recording: "))
		b.WriteString(valueStyle.Render(m.recording))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Stats: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d frames, %d dropped events", m.frames, m.dropped)))
	b.WriteString("\n\n")

	b.WriteString(m.renderKeyboard())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Play with the letter keys  ↑/↓:Volume  m:Mute  Esc:Quit"))

	return b.String()
}

// heldNames lists held notes by pitch name
func (m Model) heldNames() string {
	if len(m.held) == 0 {
		return "no keys held"
	}
	names := make([]string, len(m.held))
	for i, n := range m.held {
		names[i] = keyboard.NoteName(n)
	}
	return "held: " + strings.Join(names, " ")
}

// renderKeyboard draws the playable keys, highlighting held notes
func (m Model) renderKeyboard() string {
	held := make(map[int]bool, len(m.held))
	for _, n := range m.held {
		held[n] = true
	}

	keys := m.layout.Keys()

	cells := make([]string, len(keys))
	for i, k := range keys {
		if held[m.layout[k]] {
			cells[i] = heldKeyStyle.Render(string(k))
		} else {
			cells[i] = keyStyle.Render(string(k))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
