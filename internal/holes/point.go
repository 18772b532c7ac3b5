package holes

import "fmt"

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Order matters only for the amount of work a cascade does, not for its
// result.
var neighborOffsets = [MaxAdjacent]Point{
	{0, 1}, {0, -1}, {-1, 0}, {1, 0}, // N S W E
	{-1, 1}, {1, 1}, {-1, -1}, {1, -1}, // NW NE SW SE
}

func (p Point) add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}
