package sim

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coreman2200/funtimes-silopad/internal/layout"
	"github.com/coreman2200/funtimes-silopad/internal/palette"
	"github.com/coreman2200/funtimes-silopad/internal/panel"
)

// Grid is a pad image indexed [y][x].
type Grid [layout.Size][layout.Size]palette.RGB

// FrameMsg carries a new pad image into the program.
type FrameMsg Grid

// StatusMsg replaces the status line.
type StatusMsg string

const (
	padWidth  = 3 // "[■]"
	headerRow = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#303030"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
)

// Model is the bubbletea model of the simulated grid.
type Model struct {
	grid     Grid
	cursor   [2]int
	status   string
	gain     float64
	events   *panel.Queue
	quitting bool
}

func NewModel(events *panel.Queue, gain float64) Model {
	if gain <= 0 {
		gain = 1
	}
	return Model{events: events, gain: gain, status: "ready"}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.cursor[1] = (m.cursor[1] + layout.Size - 1) % layout.Size
		case "down", "j":
			m.cursor[1] = (m.cursor[1] + 1) % layout.Size
		case "left", "h":
			m.cursor[0] = (m.cursor[0] + layout.Size - 1) % layout.Size
		case "right", "l":
			m.cursor[0] = (m.cursor[0] + 1) % layout.Size
		case " ", "enter":
			m.press(m.cursor[0], m.cursor[1])
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		if x, y, ok := hit(msg.X, msg.Y); ok {
			m.cursor = [2]int{x, y}
			m.press(x, y)
		}

	case FrameMsg:
		m.grid = Grid(msg)

	case StatusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m *Model) press(x, y int) {
	if !m.events.Press(x, y) {
		m.status = "input queue full"
		return
	}
	m.status = fmt.Sprintf("press %s (%d,%d)", layout.Classify(layout.Silos, x, y), x, y)
}

// hit maps a terminal cell to a pad.
func hit(col, row int) (x, y int, ok bool) {
	x, y = col/padWidth, row-headerRow
	return x, y, panel.InGrid(x, y) && col >= 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("silopad"))
	b.WriteString("\n\n")
	for y := 0; y < layout.Size; y++ {
		for x := 0; x < layout.Size; x++ {
			b.WriteString(m.renderPad(x, y))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hjkl move  space press  click pad  q quit"))
	return b.String()
}

func (m Model) renderPad(x, y int) string {
	c := m.grid[y][x]
	glyph := offStyle.Render("■")
	if !c.IsOff() {
		glyph = lipgloss.NewStyle().Foreground(lipgloss.Color(lift(c, m.gain).Hex())).Render("■")
	}
	if m.cursor == [2]int{x, y} {
		return cursorStyle.Render("[") + glyph + cursorStyle.Render("]")
	}
	return " " + glyph + " "
}

// lift brightens the dim pad levels so they read on a terminal.
func lift(c palette.RGB, gain float64) palette.RGB { return c.Gain(gain) }
