package holes

import (
	"github.com/gammazero/deque"

	"github.com/vancomm/proxx/internal/collections"
)

// reveal opens start and cascades through cells with no adjacent holes.
// Flagged cells are never opened. It stops as soon as the last safe cell is
// opened, even if cells are still pending. Returns the number of cells opened.
//
// panics [AssertionError]
func (g *Game) reveal(start Point) int {
	var (
		stack     = deque.New[Point]()
		pending   = collections.NewSet[Point](0)
		neighbors = make([]Point, 0, MaxAdjacent)
		opened    = 0
	)

	stack.PushBack(start)
	pending.Add(start)

	for stack.Len() > 0 {
		p := stack.PopBack()
		pending.Remove(p)

		neighbors = g.field.neighbors(p, neighbors[:0])
		count := g.field.countHoles(neighbors)

		cell := g.field.at(p)
		cell.setAdjacentHoles(count)
		cell.visibility = Open
		g.remaining--
		opened++

		if g.remaining == 0 {
			g.state = Won
			break
		}

		if count != 0 {
			continue
		}

		for _, n := range neighbors {
			if g.field.at(n).visibility == Hidden && !pending.Contains(n) {
				stack.PushBack(n)
				pending.Add(n)
			}
		}
	}

	return opened
}
