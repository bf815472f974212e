package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matchgrid/internal/platform/tui"
)

var flagDelete bool

var savesCmd = &cobra.Command{
	Use:   "saves [name]",
	Short: "List or delete saved grids",
	Long: `List the saved grids, newest first. With --delete, remove the named save.

Examples:
  match3 saves
  match3 saves first --delete`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the named save")
}

func runSaves(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --delete needs a save name")
			os.Exit(1)
		}
		if err := store.DeleteSave(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %q\n", args[0])
		return
	}

	saves, err := store.ListSaves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving saves: %v\n", err)
		os.Exit(1)
	}
	if len(saves) == 0 {
		fmt.Println("No saved grids yet.")
		fmt.Println()
		fmt.Println("Run 'match3 new --save <name>' to create one.")
		return
	}

	rows := make([][]string, 0, len(saves))
	for _, s := range saves {
		rows = append(rows, []string{
			s.Name,
			s.Layout,
			strconv.FormatInt(s.Seed, 10),
			strconv.Itoa(s.Size),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Print(tui.RenderTable([]string{"Name", "Layout", "Seed", "Bytes", "Date"}, rows, useColor()))
}
