package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/platform/tui"
	"github.com/vovakirdan/matchgrid/internal/storage"
	"github.com/vovakirdan/matchgrid/internal/turn"
)

var (
	flagTurns    int
	flagNoRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [save]",
	Short: "Autoplay a grid and record the run",
	Long: `Play a grid by following the hint search until the turn limit is
reached or no move is left. The run is recorded unless --no-record is set.

Examples:
  match3 simulate --layout boss01 --turns 30 --seed 42
  match3 simulate first --save first-after`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	addGridFlags(simulateCmd)
	simulateCmd.Flags().IntVarP(&flagTurns, "turns", "t", 0, "Turn limit (0 = configured max_turns)")
	simulateCmd.Flags().StringVar(&flagSaveAs, "save", "", "Save the final grid under this name")
	simulateCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run")
}

func runSimulate(cmd *cobra.Command, args []string) {
	e, err := loadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	e.restoreTutorial(store)

	g := e.empty()
	if len(args) == 1 {
		if _, err = store.Restore(args[0], g); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if g, err = e.build(flagLevel, flagLayout, flagDim, flagWalls, flagProgress); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating grid: %v\n", err)
		os.Exit(1)
	}

	cfg := turn.ConfigFrom(e.cfg)
	cfg.Logger = logger.WithPrefix("turn")
	maxTurns := flagTurns
	if maxTurns == 0 {
		maxTurns = e.cfg.Turn.MaxTurns
	}

	ctrl := turn.New(g, e.streams, cfg)
	run := ctrl.Autoplay(maxTurns)
	e.saveTutorial(store)

	fmt.Print(tui.RenderGrid(g, useColor()))
	fmt.Println()
	fmt.Printf("Turns: %d  Score: %d  Cascades: %d  Items: %d  Shuffles: %d\n",
		run.Turns, run.Score, run.Cascades, run.Collected, run.Shuffles)
	if run.Stuck {
		fmt.Println("Stopped: no move left after a shuffle.")
	}
	counts := e.recorder.Counts()
	logger.Debug("events", "created", counts["created"], "destroyed", counts["destroyed"], "moved", counts["moved"])

	if !flagNoRecord {
		entry := storage.RunEntry{
			Seed:     flagSeed,
			Layout:   g.Layout().String(),
			Turns:    run.Turns,
			Score:    run.Score,
			Cascades: run.Cascades,
			Stuck:    run.Stuck,
		}
		if _, err := store.RecordRun(entry); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording run: %v\n", err)
			os.Exit(1)
		}
		if best, err := store.BestScore(entry.Layout); err == nil && best == run.Score {
			fmt.Printf("New best for %s!\n", entry.Layout)
		}
	}

	if flagSaveAs != "" {
		if _, err := store.SaveGrid(flagSaveAs, g, flagSeed); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving grid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved as %q\n", flagSaveAs)
	}
}
