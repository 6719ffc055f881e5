package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/gems"
)

// LevelModel lets users choose the board size for a match-3 game.
type LevelModel struct {
	gameID    string
	title     string
	labels    []string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	level     int // 1-based, 0 while choosing
	quitting  bool
	back      bool
}

// NewLevelModel creates a level picker for the given game.
func NewLevelModel(gameID, title string, width, height int) LevelModel {
	board := config.DefaultMatch3Config().Board
	shape := gems.ShapeFor(gameID)

	labels := make([]string, gems.LevelCount())
	for i := range labels {
		lvl := gems.GetLevel(i)
		rows, cols := lvl.Dimensions(shape, board.ViewportW, board.ViewportH)
		labels[i] = fmt.Sprintf("%d. %-6s  %2dx%-2d", lvl.ID, lvl.Name, rows, cols)
	}

	return LevelModel{
		gameID:    gameID,
		title:     title,
		labels:    labels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.labels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.level = m.cursor + 1
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m LevelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select board size:", m.width))
	b.WriteString("\n\n")

	for i, label := range m.labels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level (1-based), or 0 while still choosing.
func (m LevelModel) Selected() int {
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker and returns the chosen level.
// Level is 0 when the user backed out; quit reports a request to exit.
func RunLevelSelector(gameID, title string, cfg core.RuntimeConfig) (level int, quit bool, err error) {
	model := NewLevelModel(gameID, title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(LevelModel)
	if !ok || m.IsQuitting() {
		return 0, true, nil
	}
	return m.Selected(), false, nil
}
