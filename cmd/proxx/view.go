package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/proxx/internal/holes"
)

const (
	hiddenGlyph = "*"
	holeGlyph   = "b"
	flagGlyph   = "f"
	vBorder     = "|"
	hBorder     = "--"
)

type view struct {
	hidden lipgloss.Style
	hole   lipgloss.Style
	flag   lipgloss.Style
	number lipgloss.Style
	border lipgloss.Style
	lost   lipgloss.Style
	won    lipgloss.Style
}

// newView picks a color profile matching w, so plain writers get no escape
// codes.
func newView(w io.Writer) *view {
	r := lipgloss.NewRenderer(w)
	return &view{
		hidden: r.NewStyle().Foreground(lipgloss.Color("248")),
		hole:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		flag:   r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		number: r.NewStyle().Foreground(lipgloss.Color("33")),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		lost:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		won:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

func (v *view) glyph(s holes.Status) string {
	switch {
	case s == holes.Unknown:
		return v.hidden.Render(hiddenGlyph)
	case s == holes.Flag:
		return v.flag.Render(flagGlyph)
	case s == holes.OpenHole:
		return v.hole.Render(holeGlyph)
	case s == 0:
		return "0"
	case s > 0 && s <= holes.MaxAdjacent:
		return v.number.Render(strconv.Itoa(int(s)))
	}
	return s.String()
}

// Field draws the grid with y growing upwards and both axes labelled modulo
// 10.
func (v *view) Field(g *holes.Game) string {
	side := g.Side()
	statuses := g.Statuses()

	var sb strings.Builder
	for y := side - 1; y >= 0; y-- {
		sb.WriteString(strconv.Itoa(y % 10))
		sb.WriteString(v.border.Render(vBorder))
		for x := range side {
			sb.WriteString(v.glyph(statuses[y*side+x]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	sb.WriteByte(' ')
	sb.WriteString(v.border.Render(strings.Repeat(hBorder, side+1)))
	sb.WriteByte('\n')

	sb.WriteString("  ")
	for x := range side {
		sb.WriteString(strconv.Itoa(x % 10))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (v *view) Verdict(s holes.State) string {
	switch s {
	case holes.Lost:
		return v.lost.Render("Sorry! You lost.")
	case holes.Won:
		return v.won.Render("Congratulations! You won!")
	}
	return ""
}
