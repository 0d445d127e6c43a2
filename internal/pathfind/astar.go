// Package pathfind implements A* search over the tile grid.
//
// Search scratch (cost, heuristic, parent) lives in a table owned by one
// FindPath call, so any number of enemies may search the same map at once.
package pathfind

import (
	"container/heap"

	"hungry-horace/internal/component"
	"hungry-horace/internal/gamemap"
)

// Grid is the read-only view of a map the search needs.
type Grid interface {
	InBounds(p component.Point) bool
	Kind(p component.Point) gamemap.TileKind
}

type node struct {
	pos    component.Point
	cost   int // steps from start
	dist   int // Manhattan distance to target
	parent *node
	seq    int // insertion stamp, larger = newer
	index  int // position in the heap
}

func (n *node) score() int { return n.cost + n.dist }

// openSet orders nodes by cost+dist. Ties go to the newest node, so among
// equally short routes the search keeps extending the branch it touched last.
type openSet []*node

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if si, sj := s[i].score(), s[j].score(); si != sj {
		return si < sj
	}
	return s[i].seq > s[j].seq
}

func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

func (s *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*s)
	*s = append(*s, n)
}

func (s *openSet) Pop() any {
	old := *s
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*s = old[:len(old)-1]
	return n
}

// FindPath returns the shortest 4-directional route from start to target
// that avoids walls, as tiles from start to target inclusive. FindPath
// returns nil when either end is off the map or the target is unreachable.
func FindPath(g Grid, start, target component.Point) []gamemap.Tile {
	if !g.InBounds(start) || !g.InBounds(target) {
		return nil
	}

	seq := 0
	open := &openSet{}
	byPos := make(map[component.Point]*node)
	closed := make(map[component.Point]bool)

	push := func(n *node) {
		seq++
		n.seq = seq
		heap.Push(open, n)
		byPos[n.pos] = n
	}
	push(&node{pos: start, dist: start.Manhattan(target)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		delete(byPos, cur.pos)

		if cur.pos == target {
			return reconstruct(g, cur)
		}
		closed[cur.pos] = true

		for _, d := range component.Directions {
			next := cur.pos.Add(d.Delta())
			if !g.InBounds(next) || closed[next] || g.Kind(next) == gamemap.TileWall {
				continue
			}
			cand := &node{
				pos:    next,
				cost:   cur.cost + 1,
				dist:   next.Manhattan(target),
				parent: cur,
			}
			if existing, ok := byPos[next]; ok {
				if existing.score() < cand.score() {
					continue
				}
				existing.cost = cand.cost
				existing.parent = cur
				seq++
				existing.seq = seq
				heap.Fix(open, existing.index)
				continue
			}
			push(cand)
		}
	}
	return nil
}

func reconstruct(g Grid, end *node) []gamemap.Tile {
	n := 0
	for cur := end; cur != nil; cur = cur.parent {
		n++
	}
	path := make([]gamemap.Tile, n)
	for cur := end; cur != nil; cur = cur.parent {
		n--
		path[n] = gamemap.Tile{Kind: g.Kind(cur.pos), Pos: cur.pos}
	}
	return path
}
