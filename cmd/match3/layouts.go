package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/levels"
	"github.com/vovakirdan/matchgrid/internal/platform/tui"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List layouts and level files",
	Long:  `Display the built-in grid layouts and the levels found in the levels directory.`,
	Args:  cobra.NoArgs,
	Run:   runLayouts,
}

func runLayouts(cmd *cobra.Command, args []string) {
	rows := make([][]string, 0, len(grid.Layouts()))
	for _, l := range grid.Layouts() {
		rows = append(rows, []string{l.String()})
	}
	fmt.Println("Layouts")
	fmt.Print(tui.RenderTable([]string{"Name"}, rows, useColor()))
	fmt.Println()

	loader := levels.NewLoader(flagLevels)
	loader.Logger = logger
	lvls, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(lvls) == 0 {
		fmt.Printf("No levels found in %s\n", flagLevels)
		return
	}

	rows = rows[:0]
	for _, lvl := range lvls {
		rows = append(rows, []string{lvl.ID, lvl.Name, lvl.Layout.String(), strconv.Itoa(lvl.Dimension)})
	}
	fmt.Println("Levels")
	fmt.Print(tui.RenderTable([]string{"ID", "Name", "Layout", "Dim"}, rows, useColor()))
}
