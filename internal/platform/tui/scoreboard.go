package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

const (
	topScoresLimit    = 50
	recentScoresLimit = 20
)

// scoreView selects what the scoreboard lists.
type scoreView int

const (
	viewTop    scoreView = iota // best scores on the selected board
	viewRecent                  // this session's runs on every board
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Board key.Binding
	View  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Board, k.View, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Board: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "board")),
		View:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "best/mine")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	scoreBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardModel lists the best scores of each board and the runs of the
// current session.
type ScoreboardModel struct {
	store     *storage.Store
	sessionID string
	boards    []registry.GameInfo
	board     int
	view      scoreView

	scores []storage.ScoreEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap

	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first board's best
// scores. sessionID selects the runs shown in the session view.
func NewScoreboardModel(store *storage.Store, sessionID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:     store,
		sessionID: sessionID,
		boards:    registry.List(),
		help:      help.New(),
		keys:      DefaultScoreboardKeyMap(),
		width:     width,
		height:    height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	var cols []table.Column
	if m.view == viewTop {
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Player", Width: 16},
			{Title: "Date", Width: 12},
		}
	} else {
		cols = []table.Column{
			{Title: "Score", Width: 8},
			{Title: "Board", Width: 16},
			{Title: "Date", Width: 12},
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) currentBoard() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.board].ID
}

// reload queries the store for the current board and view. A missing or
// failing store shows an empty board.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		if m.view == viewTop {
			m.scores, _ = m.store.TopScores(m.currentBoard(), topScoresLimit)
		} else {
			m.scores, _ = m.store.SessionScores(m.sessionID, recentScoresLimit)
		}
		m.stats, _ = m.store.GetGameStats(m.currentBoard())
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		date := s.CreatedAt.Format("Jan 02 15:04")
		if m.view == viewTop {
			rows[i] = table.Row{fmt.Sprintf("%d.", i+1), fmt.Sprint(s.Score), playerName(s.SessionID), date}
		} else {
			rows[i] = table.Row{fmt.Sprint(s.Score), m.boardTitle(s.GameID), date}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) boardTitle(id string) string {
	for _, b := range m.boards {
		if b.ID == id {
			return b.Title
		}
	}
	return id
}

func playerName(sessionID string) string {
	if sessionID == "" {
		return "local"
	}
	return sessionID
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Board):
			if n := len(m.boards); n > 0 {
				step := 1
				if msg.String() == "left" || msg.String() == "h" {
					step = n - 1
				}
				m.board = (m.board + step) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.table = m.newTable()
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "BEST SCORES"
	if m.view == viewRecent {
		title = "YOUR RUNS"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.boards))
	for i, g := range m.boards {
		if i == m.board {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2).
			Render("No scores yet.\nClear some gems to get on the board!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, scoreBoxStyle.Render(body)))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(statsStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes the selected board's results.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s  games %d  best %d  mean %.1f ± %.1f",
		m.boardTitle(m.stats.GameID), m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.StdDev)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, sessionID string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, sessionID, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
