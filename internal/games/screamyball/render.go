package screamyball

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/screamy-ball/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	LowChar      = '▓'
	HighChar     = '▒'
	HUDLineChar  = '─'
	CollidedChar = '✶'
)

// Ball tiles, top then bottom. A standing ball is two tiles tall, a ducking
// ball one.
var (
	ballTop    = []rune("╭╮")
	ballBottom = []rune("╰╯")
	ballDucked = []rune("◖◗")
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	e := g.engine

	groundY := g.screenY(e.MinHeight() + 1)
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGray)

	g.drawObstacle(dst, e.Obstacle())
	g.drawBall(dst, e.Ball())

	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		drawCenteredMessage(dst, "SPLAT!", fmt.Sprintf("Survived %s  |  Press R to restart",
			core.FormatElapsed(g.elapsed)))
	}
}

// screenY maps a field column to a screen row.
func (g *Game) screenY(col int) int {
	return g.originRow + col
}

// drawTile fills one field tile with the given glyph, repeating the last
// rune when the tile is wider than the glyph.
func (g *Game) drawTile(dst *core.Screen, row, col int, glyph []rune, c core.Color) {
	tw := g.cfg.Board.TileWidth
	y := g.screenY(col)
	for i := 0; i < tw; i++ {
		r := glyph[len(glyph)-1]
		if i < len(glyph) {
			r = glyph[i]
		}
		dst.SetColored(row*tw+i, y, r, c)
	}
}

func (g *Game) drawBall(dst *core.Screen, b Ball) {
	row, col := b.Location.Row(), b.Location.Col()
	switch b.State {
	case Ducking:
		g.drawTile(dst, row, col, ballDucked, core.ColorCyan)
	case Jumping:
		g.drawTile(dst, row, col-1, ballTop, core.ColorBrightYellow)
		g.drawTile(dst, row, col, ballBottom, core.ColorBrightYellow)
	case Collided:
		g.drawTile(dst, row, col-1, []rune{CollidedChar}, core.ColorBrightRed)
		g.drawTile(dst, row, col, []rune{CollidedChar}, core.ColorBrightRed)
	default:
		g.drawTile(dst, row, col-1, ballTop, core.ColorYellow)
		g.drawTile(dst, row, col, ballBottom, core.ColorYellow)
	}
}

// drawObstacle renders the obstacle body. Low obstacles grow upward from the
// ground. High ones hang below their column and stop one tile above the
// ground, leaving room for a ducking ball.
func (g *Game) drawObstacle(dst *core.Screen, o Obstacle) {
	first, last := o.Rows()
	for row := first; row <= last; row++ {
		if row < 0 || row >= g.engine.Width() {
			continue
		}
		for h := 0; h < o.Height; h++ {
			switch o.Type {
			case Low:
				g.drawTile(dst, row, o.Location.Col()-h, []rune{LowChar}, core.ColorGreen)
			case High:
				g.drawTile(dst, row, o.Location.Col()+1+h, []rune{HighChar}, core.ColorOrange)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	if g.originRow < 1 {
		return
	}

	hud := fmt.Sprintf(" Time %s  Cleared %d  Pace %dms ",
		core.FormatElapsed(g.elapsed), g.engine.Cleared(), g.TickInterval().Milliseconds())
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	state := g.engine.MotionState().String()
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(state)-2, 0, state, core.ColorGray)

	if g.originRow > 1 {
		dst.DrawHLine(0, g.originRow-1, dst.Width(), HUDLineChar, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tl, sl := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	boxW := max(tl, sl) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-tl)/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-sl)/2, boxY+3, subtitle)
}
