package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/platform/tui"
)

var hintsCmd = &cobra.Command{
	Use:   "hints [save]",
	Short: "List the moves available on a grid",
	Long: `List every move the hint search finds. Without a save name a new
grid is created from the grid flags.

Examples:
  match3 hints first
  match3 hints --layout u-top --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHints,
}

func init() {
	addGridFlags(hintsCmd)
}

func runHints(cmd *cobra.Command, args []string) {
	e, err := loadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var g *grid.Grid
	if len(args) == 1 {
		g, err = restoreGrid(e, args[0])
	} else {
		g, err = e.build(flagLevel, flagLayout, flagDim, flagWalls, flagProgress)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(tui.RenderGrid(g, useColor()))
	fmt.Println()

	hints := g.AllHints()
	if len(hints) == 0 {
		fmt.Println("No moves available.")
		return
	}
	rows := make([][]string, 0, len(hints))
	for _, h := range hints {
		rows = append(rows, []string{h.Kind.String(), h.From.String(), h.To.String(), strconv.Itoa(len(h.Cells))})
	}
	fmt.Print(tui.RenderTable([]string{"Kind", "From", "To", "Cells"}, rows, useColor()))
}
