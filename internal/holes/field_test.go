package holes

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct{ side, holes int }{
		{2, 1},
		{2, 3},
		{5, 24},
		{10, 10},
		{16, 40},
		{40, 1},
		{40, 400},
		{40, 1599},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%dx%d(%d)", test.side, test.side, test.holes), func(t *testing.T) {
			t.Parallel()
			f := Generate(test.side, test.holes, newRand())

			require.Len(t, f.cells, test.side*test.side)

			holes := 0
			for _, c := range f.cells {
				assert.Equal(t, Hidden, c.visibility)
				if c.content == Hole {
					holes++
				}
			}
			assert.Equal(t, test.holes, holes)

			seen := make(map[Point]bool)
			for _, h := range f.Holes() {
				assert.True(t, f.InBounds(h), "hole %s out of bounds", h)
				assert.False(t, seen[h], "duplicate hole %s", h)
				assert.Equal(t, Hole, f.at(h).content)
				seen[h] = true
			}
			assert.Len(t, seen, test.holes)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(10, 20, rand.New(rand.NewPCG(7, 7)))
	b := Generate(10, 20, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a.Holes(), b.Holes())
	assert.Equal(t, a.cells, b.cells)
}

func TestHolesIsCopy(t *testing.T) {
	f := Generate(3, 2, newRand())
	holes := f.Holes()
	holes[0] = Point{-1, -1}
	assert.NotEqual(t, holes[0], f.Holes()[0])
}

func TestNeighbors(t *testing.T) {
	f := &Field{side: 4, cells: make([]Cell, 16)}

	tests := []struct {
		p    Point
		want int
	}{
		{Point{0, 0}, 3},
		{Point{3, 3}, 3},
		{Point{0, 3}, 3},
		{Point{1, 0}, 5},
		{Point{3, 2}, 5},
		{Point{1, 1}, 8},
		{Point{2, 2}, 8},
	}
	for _, test := range tests {
		t.Run(test.p.String(), func(t *testing.T) {
			neighbors := f.neighbors(test.p, nil)
			assert.Len(t, neighbors, test.want)
			for _, n := range neighbors {
				assert.True(t, f.InBounds(n))
				assert.NotEqual(t, test.p, n)
				assert.LessOrEqual(t, abs(n.X-test.p.X), 1)
				assert.LessOrEqual(t, abs(n.Y-test.p.Y), 1)
			}
		})
	}

	single := &Field{side: 1, cells: make([]Cell, 1)}
	assert.Empty(t, single.neighbors(Point{0, 0}, nil))
}

func TestCountHoles(t *testing.T) {
	g := newTestGame(t, 3,
		Point{0, 0}, Point{1, 0}, Point{2, 0},
		Point{0, 1}, Point{2, 1},
		Point{0, 2}, Point{1, 2}, Point{2, 2},
	)
	center := Point{1, 1}
	assert.Equal(t, MaxAdjacent, g.field.countHoles(g.field.neighbors(center, nil)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
