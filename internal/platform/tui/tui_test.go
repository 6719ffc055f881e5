package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/gems"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey("w"), core.ActionUp, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"shuffle", runeKey("x"), core.ActionShuffle, false},
		{"hint", runeKey("h"), core.ActionHint, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("b"), MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapMouseDrag(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if km.MapMouseToFrame(press, &frame) {
		t.Fatal("press alone should not record a drag")
	}
	release := tea.MouseMsg{X: 13, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	if !km.MapMouseToFrame(release, &frame) {
		t.Fatal("release should record a drag")
	}

	if frame.Drag == nil {
		t.Fatal("frame has no drag")
	}
	dx, dy := frame.Drag.Delta()
	if frame.Drag.FromX != 10 || frame.Drag.FromY != 5 || dx != 3 || dy != 0 {
		t.Errorf("drag = %+v", *frame.Drag)
	}

	// release without a press is ignored
	frame.Clear()
	if km.MapMouseToFrame(release, &frame) || frame.Drag != nil {
		t.Error("stray release recorded a drag")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '●', core.ColorRed)
	s.DrawTextColored(0, 1, "[x]", core.ColorBrightWhite)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") || !strings.Contains(lines[0], "●") {
		t.Errorf("row 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[x]") {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	// wide runes take two cells
	if got := centerText("日本", 8); got != "  日本" {
		t.Errorf("centerText wide = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText overflow = %q", got)
	}
}

func TestLevelModelLabels(t *testing.T) {
	m := NewLevelModel("match3_heart", "Match-3 (Heart)", 80, 24)
	if len(m.labels) != gems.LevelCount() {
		t.Fatalf("labels = %d, want %d", len(m.labels), gems.LevelCount())
	}
	if !strings.Contains(m.labels[0], "5x5") || !strings.Contains(m.labels[2], "9x9") {
		t.Errorf("labels = %q", m.labels)
	}
}

func TestModelPauseAndBack(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7}
	m := NewModel(gems.New(), nil, cfg, "tester")
	m.Init()

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		m = next.(Model)
	}

	step(TickMsg{})
	if m.State().Paused {
		t.Fatal("game starts paused")
	}

	// back is ignored while playing
	step(runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back accepted during play")
	}
	step(TickMsg{})

	step(runeKey("p"))
	step(TickMsg{})
	if !m.State().Paused {
		t.Fatal("pause key did not pause")
	}

	step(runeKey("b"))
	if !m.BackToMenu() {
		t.Error("back while paused should return to menu")
	}
	if view := m.View(); view == "" {
		t.Error("empty view")
	}

	step(runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}
	var model tea.Model = NewSessionModel(nil, cfg, NewSessionID("tester"))

	send := func(msg tea.Msg) SessionModel {
		t.Helper()
		next, _ := model.Update(msg)
		model = next
		return next.(SessionModel)
	}

	if s := model.(SessionModel).Stage(); s != "menu" {
		t.Fatalf("stage = %q, want menu", s)
	}

	if s := send(tea.KeyMsg{Type: tea.KeyTab}); s.Stage() != "scores" {
		t.Fatalf("tab: stage = %q, want scores", s.Stage())
	}
	if s := send(tea.KeyMsg{Type: tea.KeyEsc}); s.Stage() != "menu" {
		t.Fatalf("esc: stage = %q, want menu", s.Stage())
	}

	if s := send(tea.KeyMsg{Type: tea.KeyEnter}); s.Stage() != "levels" {
		t.Fatalf("enter: stage = %q, want levels", s.Stage())
	}
	send(tea.KeyMsg{Type: tea.KeyDown})
	s := send(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Stage() != "game" {
		t.Fatalf("level enter: stage = %q, want game", s.Stage())
	}
	if g, ok := s.gameModel.game.(*gems.Game); !ok || g.Level() != 2 {
		t.Errorf("game = %T level %v, want level 2", s.gameModel.game, s.gameModel.game)
	}

	s = send(runeKey("q"))
	if !s.quitting {
		t.Error("q in game should end the session")
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID("ann"), NewSessionID("ann")
	if a == b {
		t.Error("session IDs should be unique")
	}
	if !strings.HasPrefix(a, "ann-") || len(a) != len("ann-")+8 {
		t.Errorf("NewSessionID = %q", a)
	}
	if !strings.HasPrefix(NewSessionID(""), "guest-") {
		t.Error("empty user should become guest")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 11}
	g := gems.New()
	m := NewModel(g, nil, cfg, "tester")
	m.Init()

	for i := 0; i < 5; i++ {
		hint := g.Engine().Hint()
		if hint.Empty() {
			t.Fatal("no hint available")
		}
		g.Engine().Apply(hint.Move)
	}
	score := g.Engine().Score()
	if score <= 0 {
		t.Fatalf("score = %d after hint moves", score)
	}
	board := g.Engine().Snapshot().Tiles

	next, _ := m.Update(tea.WindowSizeMsg{Width: 121, Height: 50})
	m = next.(Model)

	if got := g.Engine().Score(); got != score {
		t.Errorf("score after resize = %d, want %d", got, score)
	}
	if !reflect.DeepEqual(g.Engine().Snapshot().Tiles, board) {
		t.Error("resize redealt the board")
	}
	if m.State().Score != score || m.State().Paused {
		t.Errorf("state after resize = %+v", m.State())
	}

	// shrinking below the board pauses instead of resetting
	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	m = next.(Model)
	if !m.State().Paused || m.State().Score != score {
		t.Errorf("state on a tiny screen = %+v", m.State())
	}
}
