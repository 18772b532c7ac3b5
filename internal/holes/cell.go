package holes

import (
	"fmt"
	"strconv"
)

// MaxAdjacent is the number of neighbors of an interior cell.
const MaxAdjacent = 8

type Content uint8

const (
	Empty Content = iota
	Hole
)

func (c Content) String() string {
	if c == Hole {
		return "hole"
	}
	return "empty"
}

type Visibility uint8

const (
	Hidden Visibility = iota
	Open
	Flagged
)

func (v Visibility) String() string {
	switch v {
	case Open:
		return "open"
	case Flagged:
		return "flagged"
	default:
		return "hidden"
	}
}

// Status is what a player is allowed to know about a cell.
type Status int8

const (
	Unknown  Status = -2
	Flag     Status = -1
	OpenHole Status = 64
	// 0-8 for an open empty cell with given number of adjacent holes
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "#"
	case Flag:
		return "f"
	case OpenHole:
		return "*"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Cell struct {
	content    Content
	visibility Visibility
	adjacent   uint8
}

func (c Cell) Content() Content {
	return c.content
}

func (c Cell) Visibility() Visibility {
	return c.visibility
}

// AdjacentHoles is only meaningful for an open empty cell.
func (c Cell) AdjacentHoles() int {
	return int(c.adjacent)
}

func (c Cell) IsHole() bool {
	return c.content == Hole
}

func (c Cell) Status() Status {
	switch c.visibility {
	case Flagged:
		return Flag
	case Open:
		if c.content == Hole {
			return OpenHole
		}
		return Status(c.adjacent)
	default:
		return Unknown
	}
}

// panics [AssertionError]
func (c *Cell) setAdjacentHoles(n int) {
	if n < 0 || n > MaxAdjacent {
		panic(AssertionError{fmt.Sprintf(
			"adjacent holes count %d is out of range [0, %d]", n, MaxAdjacent,
		)})
	}
	c.adjacent = uint8(n)
}
