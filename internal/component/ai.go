package component

import "fmt"

// Strategy selects how an enemy picks the tile it moves toward.
type Strategy uint8

const (
	StrategyDirect Strategy = iota // chase the player's tile
	StrategyFlank                  // aim ahead of / behind the player
	StrategyAmbush                 // pursue from afar, retreat when close
)

var strategyNames = [...]string{"direct", "flank", "ambush"}

func (s Strategy) String() string {
	if int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", s)
	}
	return strategyNames[s]
}

// MarshalText encodes s by name (config files, save files).
func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("invalid strategy %d", s)
	}
	return []byte(strategyNames[s]), nil
}

// UnmarshalText decodes a strategy name.
func (s *Strategy) UnmarshalText(b []byte) error {
	for i, name := range strategyNames {
		if string(b) == name {
			*s = Strategy(i)
			return nil
		}
	}
	return fmt.Errorf("unknown strategy %q", b)
}

// HuntState is an enemy's relation to the player.
type HuntState uint8

const (
	Hunting HuntState = iota // threatens the player
	Hunted                   // can be eaten for bonus points
)

func (h HuntState) String() string {
	switch h {
	case Hunting:
		return "hunting"
	case Hunted:
		return "hunted"
	}
	return fmt.Sprintf("HuntState(%d)", h)
}

func (h HuntState) MarshalText() ([]byte, error) {
	if h > Hunted {
		return nil, fmt.Errorf("invalid hunt state %d", h)
	}
	return []byte(h.String()), nil
}

func (h *HuntState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "hunting":
		*h = Hunting
	case "hunted":
		*h = Hunted
	default:
		return fmt.Errorf("unknown hunt state %q", b)
	}
	return nil
}

// Enemy is one chaser. All variants share this struct; Strategy selects the
// targeting function and the memory fields below are used by the matching
// variant only.
type Enemy struct {
	Actor
	Strategy Strategy
	State    HuntState
	Active   bool

	// FlankSign is +1 (ahead of the player) or -1 (behind).
	FlankSign int
	// AmbushTarget is the target kept while inside the hysteresis band.
	AmbushTarget Point
	// DroppedFood records the direct chaser's one-off special food gift.
	DroppedFood bool
}

// NewEnemy returns a hunting enemy at pos. home seeds the ambush target.
func NewEnemy(s Strategy, pos Vec, speed int, home Point) Enemy {
	return Enemy{
		Actor:        Actor{Pos: pos, Facing: DirLeft, Speed: speed},
		Strategy:     s,
		State:        Hunting,
		FlankSign:    1,
		AmbushTarget: home,
	}
}
