package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/platform/tui"
)

var (
	flagRunsLayout string
	flagRunsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the best autoplay runs",
	Long: `Display the top recorded runs, optionally for one layout.

Examples:
  match3 runs
  match3 runs --layout boss01 --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().StringVarP(&flagRunsLayout, "layout", "l", "", "Only show runs on this layout")
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagRunsLayout, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'match3 simulate' to record one.")
		return
	}

	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		stuck := ""
		if r.Stuck {
			stuck = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			r.Layout,
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.Cascades),
			stuck,
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Print(tui.RenderTable([]string{"Rank", "Score", "Layout", "Turns", "Cascades", "Stuck", "Seed", "Date"}, rows, useColor()))

	if best, err := store.BestScore(flagRunsLayout); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
