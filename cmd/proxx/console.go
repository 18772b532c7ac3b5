package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/vancomm/proxx/internal/command"
	"github.com/vancomm/proxx/internal/holes"
)

const quit = "q"

var errQuit = errors.New("quit")

type console struct {
	in   *bufio.Scanner
	out  io.Writer
	view *view
	rnd  *rand.Rand
}

func newConsole(in io.Reader, out io.Writer, rnd *rand.Rand) *console {
	return &console{
		in:   bufio.NewScanner(in),
		out:  out,
		view: newView(out),
		rnd:  rnd,
	}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns io.EOF once input is exhausted.
func (c *console) readLine(prompt string) (string, error) {
	c.printf("%s\n> ", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// askInt prompts until the answer is an integer accepted by validate.
func (c *console) askInt(prompt string, validate func(int) error) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			c.printf("%q is not an integer\n", line)
			continue
		}
		if err := validate(n); err != nil {
			c.printf("%s\n", err)
			continue
		}
		return n, nil
	}
}

// params keeps side and holes when they form a valid game and asks for the
// rest otherwise.
func (c *console) params(side, holeCount int) (int, int, error) {
	validSide := func(n int) error {
		if n < 2 || n > holes.MaxSide {
			return &holes.ConfigError{Param: "side length", Value: n, Min: 2, Max: holes.MaxSide}
		}
		return nil
	}
	var err error
	if validSide(side) != nil {
		side, err = c.askInt("Please enter playing field side size.", validSide)
		if err != nil {
			return 0, 0, err
		}
	}

	validHoles := func(n int) error {
		_, err := holes.New(side, n)
		return err
	}
	if validHoles(holeCount) != nil {
		holeCount, err = c.askInt("Please enter number of black holes.", validHoles)
		if err != nil {
			return 0, 0, err
		}
	}
	return side, holeCount, nil
}

// nextCommand reads commands until one is valid for a side x side field.
func (c *console) nextCommand(side int) (command.Command, error) {
	for {
		line, err := c.readLine("Enter a command: o x y (open), f x y (flag), u x y (unflag), q (quit).")
		if err != nil {
			return command.Command{}, err
		}
		if line == quit {
			return command.Command{}, errQuit
		}
		cmd, err := command.Parse(line)
		if err != nil {
			c.printf("%s\n", err)
			continue
		}
		if err := command.Check([]command.Command{cmd}, side); err != nil {
			c.printf("%s\n", errors.Unwrap(err))
			continue
		}
		return cmd, nil
	}
}

// play runs a single game and returns its final state.
func (c *console) play(side, holeCount int) (holes.State, error) {
	g, err := holes.New(side, holeCount)
	if err != nil {
		return holes.InProgress, err
	}
	if err := g.Initialize(c.rnd); err != nil {
		return holes.InProgress, err
	}

	for {
		c.printf("\n%s", c.view.Field(g))
		c.printf("holes: %d, flags: %d\n", g.HoleCount(), g.Flags())
		if g.State().Terminal() {
			return g.State(), nil
		}
		cmd, err := c.nextCommand(side)
		if err != nil {
			return g.State(), err
		}
		if _, err := cmd.Apply(g); err != nil {
			return g.State(), err
		}
	}
}

// run plays games until the player quits or input ends.
func (c *console) run(side, holeCount int) error {
	for {
		var err error
		side, holeCount, err = c.params(side, holeCount)
		if err != nil {
			return ignoreQuit(err)
		}

		state, err := c.play(side, holeCount)
		if err != nil {
			return ignoreQuit(err)
		}
		c.printf("%s\n", c.view.Verdict(state))

		again, err := c.readLine("Play one more time? (y/n)")
		if err != nil {
			return ignoreQuit(err)
		}
		if !strings.HasPrefix(strings.ToLower(again), "y") {
			return nil
		}
		side, holeCount = 0, 0
	}
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
