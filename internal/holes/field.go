package holes

import (
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

// Field is a square grid stored row-major.
type Field struct {
	side  int
	cells []Cell
	holes []Point
}

// Generate places holeCount holes at distinct random positions of a
// side x side field. Callers must keep holeCount below side*side.
func Generate(side, holeCount int, r *rand.Rand) *Field {
	f := &Field{
		side:  side,
		cells: make([]Cell, side*side), // zero Cell is a hidden empty one
		holes: make([]Point, 0, holeCount),
	}

	tries := 0
	for range holeCount {
		var p Point
		for {
			tries++
			p = Point{r.IntN(side), r.IntN(side)}
			if f.at(p).content != Hole {
				break
			}
		}
		f.at(p).content = Hole
		f.holes = append(f.holes, p)
	}

	Log.WithFields(logrus.Fields{
		"side":  side,
		"holes": holeCount,
		"tries": tries,
	}).Debug("field generated")

	return f
}

func (f *Field) Side() int {
	return f.side
}

func (f *Field) InBounds(p Point) bool {
	return 0 <= p.X && p.X < f.side && 0 <= p.Y && p.Y < f.side
}

// Holes returns a copy of hole coordinates in placement order.
func (f *Field) Holes() []Point {
	return slices.Clone(f.holes)
}

func (f *Field) at(p Point) *Cell {
	return &f.cells[p.Y*f.side+p.X]
}

// neighbors appends in-bounds neighbors of p to buf.
func (f *Field) neighbors(p Point, buf []Point) []Point {
	for _, o := range neighborOffsets {
		if n := p.add(o); f.InBounds(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

func (f *Field) countHoles(points []Point) (count int) {
	for _, p := range points {
		if f.at(p).content == Hole {
			count++
		}
	}
	return
}
