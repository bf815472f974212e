// match3 drives the match-3 grid engine from the command line.
//
// Usage:
//
//	match3 layouts            - List layouts and level files
//	match3 new                - Create and fill a grid, optionally saving it
//	match3 show <save>        - Print a saved grid
//	match3 hints <save>       - List the moves available on a saved grid
//	match3 simulate           - Autoplay a grid and record the run
//	match3 saves              - List or delete saved grids
//	match3 runs               - Show the best autoplay runs
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible grids
//	--db <path>       - Set database path (default: ~/.match3/match3.db)
//	--config <path>   - Engine config YAML
//	--verbose         - Log engine events
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/platform/tui"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagVerbose    bool
	flagDifficulty string
	flagCatalog    string
	flagLevels     string
	flagNoColor    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "match3",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 grid engine",
	Long: `match3 builds, resolves and replays match-3 grids in the terminal.

Available commands:
  layouts   - Show built-in layouts and level files
  new       - Create a grid
  show      - Print a saved grid
  hints     - List available moves
  simulate  - Autoplay and record the run
  saves     - Manage saved grids
  runs      - View the best runs

Examples:
  match3 layouts
  match3 new --layout plus --dim 9 --save start
  match3 show start
  match3 simulate --layout boss01 --turns 30 --seed 42
  match3 runs --layout square`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		if flagSeed == 0 {
			flagSeed = time.Now().UnixNano()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/match3.db", "Path to the saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom engine config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine events")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to a piece catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "levels", "Directory of level files")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hintsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(runsCmd)
}

// useColor reports whether output should be styled.
func useColor() bool {
	return !flagNoColor && tui.StdoutIsTerminal()
}
