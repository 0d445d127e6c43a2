package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is the text shown in the HUD.
type Status struct {
	Level      string
	LevelScore int
	TotalScore int
	BestScore  int
	Paused     bool
	Message    string
	Help       string
}

// DrawHUD renders the status bar and message line at the bottom of the
// screen and shows the frame.
func (r *Renderer) DrawHUD(s Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("Level: %s  Score: %d  Total: %d  Best: %d",
		s.Level, s.LevelScore, s.TotalScore, max(s.BestScore, s.TotalScore))
	if s.Paused {
		status += "  [PAUSED]"
	}
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if s.Message != "" {
		r.drawText(0, hudY+2, s.Message, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	r.drawText(0, hudY+3, s.Help, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := range w {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
