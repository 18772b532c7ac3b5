// Package command implements the line-oriented move language shared by the
// websocket, batch and console front ends:
//
//	o x y // open a cell at x:y
//	f x y // flag a cell at x:y
//	u x y // unflag a cell at x:y
//	g     // do nothing, report the game
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/proxx/internal/holes"
)

type Verb string

const (
	Get    Verb = "g"
	Open   Verb = "o"
	Flag   Verb = "f"
	Unflag Verb = "u"
)

// Maps known commands to number of arguments
var verbNargs = map[Verb]int{
	Get:    0,
	Open:   2,
	Flag:   2,
	Unflag: 2,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArity          = errors.New("invalid number of arguments")
	ErrBadArgument    = errors.New("coordinates must be integers")
)

type Command struct {
	Verb  Verb
	Point holes.Point
}

func (c Command) String() string {
	if c.Verb == Get {
		return string(c.Verb)
	}
	return fmt.Sprintf("%s %d %d", c.Verb, c.Point.X, c.Point.Y)
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	verb := Verb(parts[0])
	nargs, ok := verbNargs[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %q takes %d", ErrArity, parts[0], nargs,
		)
	}
	cmd := Command{Verb: verb}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Point = holes.Point{X: x, Y: y}
	}
	return cmd, nil
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: x = %q", ErrBadArgument, twoStrings[0])
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: y = %q", ErrBadArgument, twoStrings[1])
	}
	return
}

// Apply executes the command and reports the resulting game state.
func (c Command) Apply(g *holes.Game) (holes.State, error) {
	switch c.Verb {
	case Open:
		return g.OpenCell(c.Point)
	case Flag:
		return g.State(), g.Flag(c.Point)
	case Unflag:
		return g.State(), g.Unflag(c.Point)
	case Get:
		return g.State(), nil
	}
	return g.State(), fmt.Errorf("%w %q", ErrUnknownCommand, c.Verb)
}

// LineError locates a malformed command within a multi-line script.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Lines iterates over newline-separated pieces of s, blank ones included.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// ParseAll parses every non-blank line of script. Nothing is returned unless
// all lines are valid.
func ParseAll(script string) ([]Command, error) {
	var cmds []Command
	for i, line := range Lines(strings.TrimSpace(script)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, &LineError{Line: i, Err: err}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Check reports the first command addressing a cell outside of a side x side
// field.
func Check(cmds []Command, side int) error {
	for i, cmd := range cmds {
		if cmd.Verb == Get {
			continue
		}
		p := cmd.Point
		if p.X < 0 || p.X >= side || p.Y < 0 || p.Y >= side {
			return &LineError{
				Line: i,
				Err:  &holes.OutOfRangeError{Point: p, Side: side},
			}
		}
	}
	return nil
}

// Run applies cmds in order and stops once the game is over. It returns the
// number of commands applied.
func Run(g *holes.Game, cmds []Command) (int, holes.State, error) {
	state := g.State()
	for i, cmd := range cmds {
		var err error
		if state, err = cmd.Apply(g); err != nil {
			return i, state, &LineError{Line: i, Err: err}
		}
		if state.Terminal() {
			return i + 1, state, nil
		}
	}
	return len(cmds), state, nil
}
