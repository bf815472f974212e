// Package tui renders grids and result tables for the terminal.
package tui

import (
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// runeClass groups dump characters that share a style.
type runeClass uint8

const (
	classDefault runeClass = iota
	classBlue
	classRed
	classGreen
	classPurple
	classBlack
	classYellow
	classPower
	classRock
	classItem
	classRamp
	classWall
	classHeader
)

// classStyles maps rune classes to lipgloss styles.
var classStyles = map[runeClass]lipgloss.Style{
	classDefault: lipgloss.NewStyle(),
	classBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	classRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	classGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	classPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	classBlack:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	classYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	classPower:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")),
	classRock:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	classItem:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	classRamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	classWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	classHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
}

func classify(r rune) runeClass {
	if unicode.IsLower(r) {
		return classPower
	}
	switch r {
	case 'B':
		return classBlue
	case 'R':
		return classRed
	case 'G':
		return classGreen
	case 'P':
		return classPurple
	case 'K':
		return classBlack
	case 'Y':
		return classYellow
	case '#':
		return classRock
	case '$':
		return classItem
	case '<', '>', '^':
		return classRamp
	case '|', '-':
		return classWall
	default:
		return classDefault
	}
}

// StdoutIsTerminal reports whether colors should be used on stdout.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RenderGrid returns the grid dump, colored when color is set.
// Adjacent cells with the same style are grouped to minimize ANSI escape sequences.
func RenderGrid(g *grid.Grid, color bool) string {
	dump := grid.RenderASCII(g)
	if !color {
		return dump
	}

	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	var sb strings.Builder
	sb.Grow(len(dump) * 2)

	for i, line := range lines {
		if i == 0 {
			sb.WriteString(classStyles[classHeader].Render(line))
			sb.WriteRune('\n')
			continue
		}
		runes := []rune(line)
		x := 0
		for x < len(runes) {
			start := classify(runes[x])
			var run strings.Builder
			for x < len(runes) && classify(runes[x]) == start {
				run.WriteRune(runes[x])
				x++
			}
			sb.WriteString(classStyles[start].Render(run.String()))
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
