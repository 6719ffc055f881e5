package gems

import (
	"fmt"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/match3"
)

const (
	cellW     = 3 // characters per tile: marker, glyph, marker
	cellH     = 1
	hudHeight = 3
)

var tileGlyphs = []rune{'●', '◆', '▲', '■', '★', '♥', '♣', '♠', '✚', '◎'}

var tileColors = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
	core.ColorBrightWhite,
	core.ColorBrightRed,
	core.ColorBrightGreen,
}

// layout positions the board on the terminal.
type layout struct {
	frame core.Rect // board including border
	board core.Rect // tile area
	fits  bool
}

func computeLayout(rows, cols, screenW, screenH int) layout {
	boardW := cols*cellW + 2
	boardH := rows*cellH + 2
	x := (screenW - boardW) / 2
	y := hudHeight + 1

	frame := core.NewRect(x, y, boardW, boardH)
	return layout{
		frame: frame,
		board: core.NewRect(x+1, y+1, cols*cellW, rows*cellH),
		// one extra line for the controls footer
		fits: screenW >= boardW && screenH >= y+boardH+1,
	}
}

func tileGlyph(t match3.Tile) (rune, core.Color) {
	if t <= match3.Empty {
		return ' ', core.ColorDefault
	}
	i := int(t-1) % len(tileGlyphs)
	return tileGlyphs[i], tileColors[int(t-1)%len(tileColors)]
}

// timerColor picks the bar color from the fraction of time left.
func timerColor(remaining, limit int) core.Color {
	if limit <= 0 {
		return core.ColorBlue
	}
	switch {
	case remaining*2 > limit:
		return core.ColorBlue
	case remaining*4 > limit:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.view()
	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap)
	g.renderOverlays(dst, snap)

	controls := g.Controls()
	dst.DrawTextCentered(g.screenH-1, controls)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", g.layout.frame.W, g.layout.frame.Bottom()+1)
	dst.DrawTextCentered(y+1, need)
}

// renderHUD draws title, score and the countdown bar.
func (g *Game) renderHUD(dst *core.Screen, snap match3.Snapshot) {
	frame := g.layout.frame

	title := g.Title()
	if lvl := GetLevel(g.levelIndex); lvl != nil {
		title = fmt.Sprintf("%s · %s", title, lvl.Name)
	}
	dst.DrawTextCentered(0, title)

	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(frame.X, 1, score)
	if g.deltaTicks > 0 && g.lastDelta > 0 {
		popup := fmt.Sprintf("+%d x%d", g.lastDelta, g.lastCombo)
		dst.DrawTextColored(frame.X+len(score)+1, 1, popup, core.ColorBrightYellow)
	}

	timeStr := fmt.Sprintf("%ds", snap.Remaining)
	dst.DrawText(frame.Right()-len(timeStr), 1, timeStr)

	// Countdown bar
	width := frame.W
	filled := width
	if snap.TimeLimit > 0 {
		filled = snap.Remaining * width / snap.TimeLimit
	}
	dst.DrawHLine(frame.X, 2, width, '░', core.ColorGray)
	dst.DrawHLine(frame.X, 2, filled, '█', timerColor(snap.Remaining, snap.TimeLimit))
}

// renderBoard draws the border, tiles and markers.
func (g *Game) renderBoard(dst *core.Screen, snap match3.Snapshot) {
	dst.DrawBox(g.layout.frame)
	area := g.layout.board
	animating := g.current != nil

	for i, tile := range snap.Tiles {
		if !snap.Valid[i] {
			continue
		}
		row, col := i/snap.Cols, i%snap.Cols
		x := area.X + col*cellW
		y := area.Y + row*cellH

		if snap.Removed[i] {
			dst.SetColored(x+1, y, '✶', core.ColorBrightWhite)
		} else {
			r, c := tileGlyph(tile)
			dst.SetColored(x+1, y, r, c)
		}

		if animating {
			continue
		}
		switch {
		case i == g.selected:
			dst.SetColored(x, y, '<', core.ColorBrightYellow)
			dst.SetColored(x+2, y, '>', core.ColorBrightYellow)
		case i == g.cursor:
			dst.SetColored(x, y, '[', core.ColorBrightWhite)
			dst.SetColored(x+2, y, ']', core.ColorBrightWhite)
		case snap.HintVisible && snap.InHint(i):
			dst.SetColored(x, y, '(', core.ColorBrightCyan)
			dst.SetColored(x+2, y, ')', core.ColorBrightCyan)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, snap match3.Snapshot) {
	centerX, centerY := g.layout.frame.Center()

	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if snap.GameOver {
		scoreStr := fmt.Sprintf("Score: %d", snap.Score)
		drawOverlay(dst, centerX, centerY, "TIME'S UP", scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Grab | X: Shuffle | H: Hint | P: Pause | Q: Quit"
}
