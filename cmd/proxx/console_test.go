package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/proxx/internal/holes"
)

func runConsole(t *testing.T, input string, side, holeCount int) string {
	t.Helper()
	var out bytes.Buffer
	c := newConsole(strings.NewReader(input), &out, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, c.run(side, holeCount))
	return out.String()
}

func TestFieldHidden(t *testing.T) {
	g, err := holes.New(2, 3)
	require.NoError(t, err)
	require.NoError(t, g.Initialize(rand.New(rand.NewPCG(1, 1))))

	var out bytes.Buffer
	assert.Equal(t, "1|* * \n0|* * \n ------\n  0 1 \n", newView(&out).Field(g))
}

func TestFieldLabelsWrap(t *testing.T) {
	g, err := holes.New(12, 1)
	require.NoError(t, err)
	require.NoError(t, g.Initialize(rand.New(rand.NewPCG(1, 1))))

	var out bytes.Buffer
	field := newView(&out).Field(g)
	lines := strings.Split(strings.TrimSuffix(field, "\n"), "\n")
	require.Len(t, lines, 14)
	assert.True(t, strings.HasPrefix(lines[0], "1|"), lines[0])
	assert.True(t, strings.HasPrefix(lines[11], "0|"), lines[11])
	assert.Equal(t, "  0 1 2 3 4 5 6 7 8 9 0 1 ", lines[13])
}

func TestFieldAfterLoss(t *testing.T) {
	g, err := holes.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, g.Initialize(rand.New(rand.NewPCG(1, 1))))
	hole := g.Holes()[0]
	_, err = g.OpenCell(hole)
	require.NoError(t, err)

	var out bytes.Buffer
	v := newView(&out)
	field := v.Field(g)
	assert.Equal(t, 2, strings.Count(field, holeGlyph))
	assert.Equal(t, "Sorry! You lost.", v.Verdict(g.State()))
}

func TestPromptsForParams(t *testing.T) {
	out := runConsole(t, "1\nabc\n5\n30\n3\n", 0, 0)

	assert.Contains(t, out, "Please enter playing field side size.")
	assert.Contains(t, out, "side length must be between 2 and 40, got 1")
	assert.Contains(t, out, `"abc" is not an integer`)
	assert.Contains(t, out, "Please enter number of black holes.")
	assert.Contains(t, out, "hole count must be between 1 and 24, got 30")
	assert.Contains(t, out, "holes: 3, flags: 0")
}

func TestFlagsSkipPrompts(t *testing.T) {
	out := runConsole(t, "q\n", 4, 2)
	assert.NotContains(t, out, "Please enter")
	assert.Contains(t, out, "holes: 2, flags: 0")
}

func TestCommands(t *testing.T) {
	out := runConsole(t, "o 9 9\nx\nf 0 0\nq\n", 5, 3)

	assert.Contains(t, out, "cell 9:9 is outside of 5x5 field")
	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "0|f * * * * ")
	assert.Contains(t, out, "holes: 3, flags: 1")
}

// Any open on a 2x2 field with 3 holes ends the game.
func TestPlayAgain(t *testing.T) {
	out := runConsole(t, "o 0 0\ny\n2\n3\no 1 1\nn\n", 2, 3)

	verdicts := strings.Count(out, "Sorry! You lost.") +
		strings.Count(out, "Congratulations! You won!")
	assert.Equal(t, 2, verdicts)
	assert.Equal(t, 2, strings.Count(out, "Play one more time?"))
}
