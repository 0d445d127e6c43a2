package render

import (
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of screen rows reserved below the map.
const hudRows = 4

// Sprite is one actor to draw. Pos is in pixels; the sprite is drawn on its
// nearest tile.
type Sprite struct {
	Pos   component.Vec
	Glyph string
	Style tcell.Style
}

// Scene is everything drawn in one frame apart from the HUD.
type Scene struct {
	Level    int
	Width    int
	Height   int
	TileSize int
	Kinds    []gamemap.TileKind // row-major
	Focus    component.Point    // tile the camera follows
	Sprites  []Sprite           // drawn in order, later on top
}

// Renderer draws the game onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, max(h-hudRows, 1)),
	}
}

// DrawFrame clears the screen and draws the map and sprites. The caller
// draws the HUD and calls Show.
func (r *Renderer) DrawFrame(sc Scene) {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(h-hudRows, 1))
	r.camera.Follow(sc.Focus, sc.Width, sc.Height)

	r.screen.Clear()
	r.drawMap(sc)
	for _, s := range sc.Sprites {
		sx, sy, ok := r.camera.WorldToScreen(s.Pos.Tile(sc.TileSize))
		if !ok {
			continue
		}
		r.putGlyph(sx, sy, s.Glyph, s.Style)
	}
}

func (r *Renderer) drawMap(sc Scene) {
	theme := themeFor(sc.Level)
	for y := range sc.Height {
		for x := range sc.Width {
			p := component.Point{X: x, Y: y}
			sx, sy, ok := r.camera.WorldToScreen(p)
			if !ok {
				continue
			}
			r.putGlyph(sx, sy, theme.tileGlyph(sc.Kinds[y*sc.Width+x]), theme.Style)
		}
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Pad narrow glyphs to the two-column tile width.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
