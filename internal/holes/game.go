package holes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MaxSide is the largest allowed field side length.
const MaxSide = 40

type State int8

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}

// Terminal reports whether no further action can change the game.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// Game is not safe for concurrent use.
type Game struct {
	side, holeCount int

	field     *Field
	remaining int // safe cells left to open
	flags     int
	state     State
}

// New validates game parameters. The field stays empty until
// [Game.Initialize] is called.
func New(side, holeCount int) (*Game, error) {
	if side < 1 || side > MaxSide {
		return nil, &ConfigError{
			Param: "side length", Value: side, Min: 1, Max: MaxSide,
		}
	}

	maxHoles := side*side - 1
	if holeCount < 1 || holeCount > maxHoles {
		return nil, &ConfigError{
			Param: "hole count", Value: holeCount, Min: 1, Max: maxHoles,
		}
	}

	g := &Game{
		side:      side,
		holeCount: holeCount,
		state:     InProgress,
	}
	return g, nil
}

func (g *Game) Initialize(r *rand.Rand) error {
	if g.field != nil {
		return ErrAlreadyInitialized
	}
	g.field = Generate(g.side, g.holeCount, r)
	g.remaining = g.side*g.side - g.holeCount
	return nil
}

func (g *Game) Side() int {
	return g.side
}

func (g *Game) HoleCount() int {
	return g.holeCount
}

func (g *Game) State() State {
	return g.state
}

// Remaining is the number of safe cells yet to be opened.
func (g *Game) Remaining() int {
	return g.remaining
}

func (g *Game) Flags() int {
	return g.flags
}

func (g *Game) Initialized() bool {
	return g.field != nil
}

func (g *Game) cell(p Point) (*Cell, error) {
	if g.field == nil {
		return nil, ErrNotInitialized
	}
	if !g.field.InBounds(p) {
		return nil, &OutOfRangeError{Point: p, Side: g.side}
	}
	return g.field.at(p), nil
}

// CellAt returns a copy of the cell at p.
func (g *Game) CellAt(p Point) (Cell, error) {
	c, err := g.cell(p)
	if err != nil {
		return Cell{}, err
	}
	return *c, nil
}

func (g *Game) Holes() []Point {
	if g.field == nil {
		return nil
	}
	return g.field.Holes()
}

// Statuses returns the player-visible field, row-major.
func (g *Game) Statuses() []Status {
	statuses := make([]Status, g.side*g.side)
	for i := range statuses {
		if g.field == nil {
			statuses[i] = Unknown
		} else {
			statuses[i] = g.field.cells[i].Status()
		}
	}
	return statuses
}

func (g *Game) Flag(p Point) error {
	c, err := g.cell(p)
	if err != nil {
		return err
	}
	if g.state.Terminal() {
		return nil
	}
	if c.visibility == Hidden {
		c.visibility = Flagged
		g.flags++
	}
	return nil
}

func (g *Game) Unflag(p Point) error {
	c, err := g.cell(p)
	if err != nil {
		return err
	}
	if g.state.Terminal() {
		return nil
	}
	if c.visibility == Flagged {
		c.visibility = Hidden
		g.flags--
	}
	return nil
}

// OpenCell opens the cell at p. A flagged cell has to be unflagged first.
// Opening a hole loses the game and exposes every hole.
func (g *Game) OpenCell(p Point) (state State, err error) {
	c, err := g.cell(p)
	if err != nil {
		return g.state, err
	}
	if g.state.Terminal() || c.visibility != Hidden {
		return g.state, nil
	}

	if c.content == Hole {
		g.lose()
		Log.WithField("point", p).Debug("hole opened")
		return g.state, nil
	}

	defer func() {
		var ae AssertionError
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				Log.WithField("point", p).WithError(ae).Error("assertion failed")
				state, err = g.state, ae
				return
			}
			panic(r)
		}
	}()

	opened := g.reveal(p)

	Log.WithFields(logrus.Fields{
		"point":     p,
		"opened":    opened,
		"remaining": g.remaining,
		"state":     g.state,
	}).Debug("cells revealed")

	return g.state, nil
}

func (g *Game) lose() {
	g.state = Lost
	for _, h := range g.field.holes {
		c := g.field.at(h)
		if c.visibility == Flagged {
			g.flags--
		}
		c.visibility = Open
	}
}

func (g *Game) String() string {
	var b strings.Builder
	statuses := g.Statuses()
	for y := range g.side {
		for x := range g.side {
			fmt.Fprint(&b, statuses[y*g.side+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
