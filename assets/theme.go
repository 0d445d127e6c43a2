package assets

import "hungry-horace/internal/component"

// Emoji constants used as actor glyphs.
const (
	GlyphPlayer = "😋"
	GlyphHunted = "😱" // any enemy after the bell
	GlyphCaught = "💥"
)

// EnemyDef describes how one enemy strategy is shown.
type EnemyDef struct {
	Name  string
	Glyph string
	Lore  string // shown on the end screen when this enemy catches the player
}

// Enemies maps each targeting strategy to its keeper.
var Enemies = map[component.Strategy]EnemyDef{
	component.StrategyDirect: {
		Name:  "Head Keeper",
		Glyph: "👮",
		Lore:  "He walks straight at you. He always has.",
	},
	component.StrategyFlank: {
		Name:  "Gate Warden",
		Glyph: "💂",
		Lore:  "He heads for where you were going, then for where you came from.",
	},
	component.StrategyAmbush: {
		Name:  "Night Watchman",
		Glyph: "👷",
		Lore:  "He follows from afar and slips home the moment you turn on him.",
	},
}

// EnemyFor returns the definition for s, with a generic fallback.
func EnemyFor(s component.Strategy) EnemyDef {
	if d, ok := Enemies[s]; ok {
		return d
	}
	return EnemyDef{Name: "Keeper", Glyph: "🧍"}
}

// HelpLine is the key summary shown under the HUD.
const HelpLine = "arrows/hjkl move  space pause  ^S save  ^L load  q quit"

// Messages shown as a level starts, picked by level index.
var LevelIntros = []string{
	"Horace slips into the park. The keepers are waking.",
	"Down in the cellar, something rings in the dark.",
	"The market is closing. Nobody counted the cakes.",
	"The warren twists on. Ring the bell and turn the tables.",
}

// LevelIntro returns the intro line for level index i.
func LevelIntro(i int) string {
	n := len(LevelIntros)
	return LevelIntros[((i%n)+n)%n]
}
