package render

import (
	"hungry-horace/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// LevelTiles holds the glyphs used to draw one level's terrain.
// Emoji are rendered by the terminal with their own colors; the ASCII
// glyphs take Style.
type LevelTiles struct {
	Wall  string
	Style tcell.Style // for narrow glyphs
}

// LevelThemes maps level index to its wall set, cycling past the end.
var LevelThemes = []LevelTiles{
	{Wall: "🌳", Style: tcell.StyleDefault.Foreground(tcell.ColorGreenYellow)}, // garden hedges
	{Wall: "🧱", Style: tcell.StyleDefault.Foreground(tcell.ColorTan)},         // cellar brick
	{Wall: "🪵", Style: tcell.StyleDefault.Foreground(tcell.ColorOrange)},      // market stalls
	{Wall: "🪨", Style: tcell.StyleDefault.Foreground(tcell.ColorSilver)},      // warren rock
}

// tileGlyphs are shared by every theme.
var tileGlyphs = map[gamemap.TileKind]string{
	gamemap.TileEmpty:       " ",
	gamemap.TileNormalFood:  "·",
	gamemap.TileSpecialFood: "🍰",
	gamemap.TileBell:        "🔔",
	gamemap.TileExit:        "🚪",
	gamemap.TileEntrance:    "🏠",
}

// themeFor returns the tile set for level index i.
func themeFor(i int) LevelTiles {
	n := len(LevelThemes)
	return LevelThemes[((i%n)+n)%n]
}

// tileGlyph returns the glyph for k under theme t.
func (t LevelTiles) tileGlyph(k gamemap.TileKind) string {
	if k == gamemap.TileWall {
		return t.Wall
	}
	if g, ok := tileGlyphs[k]; ok {
		return g
	}
	return "?"
}
