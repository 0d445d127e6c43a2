package generate

import (
	"fmt"
	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
)

// populate places the entrance, exit and bells once rooms and corridors are
// carved, and clears the player's start tile.
func (b *builder) populate() error {
	if len(b.rooms) == 0 {
		return fmt.Errorf("generate: no rooms carved: %w", ErrTooSmall)
	}
	first := b.rooms[0]
	entrance, ok := b.entranceSpot(first)
	if !ok {
		return fmt.Errorf("generate: no wall spot for the entrance of room %v: %w", first, ErrTooSmall)
	}
	b.gmap.Set(entrance, gamemap.TileEntrance)

	exit := component.Point{X: first.X2, Y: first.Y2}
	if len(b.rooms) > 1 {
		exit = b.rooms[len(b.rooms)-1].Center()
	}
	b.gmap.Set(exit, gamemap.TileExit)

	if b.cfg.BellEvery > 0 && len(b.rooms) > 2 {
		for i, room := range b.rooms[1 : len(b.rooms)-1] {
			if i%b.cfg.BellEvery == 0 {
				b.gmap.Set(room.Center(), gamemap.TileBell)
			}
		}
	}

	spawns, err := b.gmap.Spawns()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if spawns.Home == spawns.Exit {
		return fmt.Errorf("generate: exit on the start tile: %w", ErrTooSmall)
	}
	b.gmap.Set(spawns.Home, gamemap.TileEmpty)
	return nil
}

// entranceSpot finds a wall tile on the rim of room whose only open
// neighbour is inside the room, so placing the entrance cuts no corridor.
func (b *builder) entranceSpot(room Rect) (component.Point, bool) {
	var rim []component.Point
	for x := room.X1; x <= room.X2; x++ {
		rim = append(rim, component.Point{X: x, Y: room.Y1 - 1}, component.Point{X: x, Y: room.Y2 + 1})
	}
	for y := room.Y1; y <= room.Y2; y++ {
		rim = append(rim, component.Point{X: room.X1 - 1, Y: y}, component.Point{X: room.X2 + 1, Y: y})
	}
	for _, p := range rim {
		if !b.gmap.InBounds(p) || b.gmap.Kind(p) != gamemap.TileWall {
			continue
		}
		open := 0
		for _, d := range component.Directions {
			if b.gmap.Walkable(p.Add(d.Delta())) {
				open++
			}
		}
		if open == 1 {
			return p, true
		}
	}
	return component.Point{}, false
}
