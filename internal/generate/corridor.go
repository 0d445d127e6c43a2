package generate

import "hungry-horace/internal/component"

// carveCorridor digs a food-lined tunnel between two room centers.
func (b *builder) carveCorridor(from, to component.Point) {
	switch b.cfg.CorridorStyle {
	case CorridorZShaped:
		b.carveZShaped(from, to)
	case CorridorStraight:
		b.carveH(from.X, to.X, from.Y)
		b.carveV(from.Y, to.Y, to.X)
	default: // LShaped
		if b.cfg.Rand.Intn(2) == 0 {
			b.carveH(from.X, to.X, from.Y)
			b.carveV(from.Y, to.Y, to.X)
		} else {
			b.carveV(from.Y, to.Y, from.X)
			b.carveH(from.X, to.X, to.Y)
		}
	}
}

func (b *builder) carveH(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		b.open(component.Point{X: x, Y: y})
	}
}

func (b *builder) carveV(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		b.open(component.Point{X: x, Y: y})
	}
}

func (b *builder) carveZShaped(from, to component.Point) {
	midY := (from.Y + to.Y) / 2
	b.carveV(from.Y, midY, from.X)
	b.carveH(from.X, to.X, midY)
	b.carveV(midY, to.Y, to.X)
}
