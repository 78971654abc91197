package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/racelens/racelens/internal/logger"
	"github.com/racelens/racelens/internal/report"
)

var runsJSON bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage saved analysis runs",
	Long: `Manage analysis runs persisted with 'analyze --save'.

Example:
  racelens runs list          # List saved runs
  racelens runs show <id>     # Print a run's enriched events
  racelens runs clear         # Delete all saved runs`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's enriched events",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved runs",
	RunE:  runRunsClear,
}

func init() {
	runsShowCmd.Flags().BoolVar(&runsJSON, "json", false, "Output events as JSON Lines")
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsClearCmd)
	rootCmd.AddCommand(runsCmd)
}

func openStore() (*report.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.InitQuiet()
	return report.NewSQLiteStore(cfg.Settings.Database)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-14s %s  (%s, %s relevant, %d dropped)\n",
			run.ID,
			humanize.Time(run.CreatedAt),
			run.Source,
			humanize.Comma(int64(run.EventCount))+" events",
			humanize.Comma(int64(run.RelevantCount)),
			run.DroppedCount,
		)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(args[0])
	if err != nil {
		return err
	}
	events, err := store.GetRunEvents(run.ID)
	if err != nil {
		return err
	}

	if runsJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, ev := range events {
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Printf("Run %s (%s) from %s\n\n", run.ID, humanize.Time(run.CreatedAt), run.Source)
	for _, ev := range events {
		marker := " "
		if ev.IsTransition() && ev.Relevant {
			marker = "!"
		}
		fmt.Printf("%s T%d %s\n", marker, ev.Thread, ev.Description)
		for _, frame := range ev.Trace {
			fmt.Printf("    %s:%d:%d %s\n", frame.File, frame.Line, frame.Column, frame.Function)
		}
	}
	return nil
}

func runRunsClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	deleted, err := store.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d run(s).\n", deleted)
	return nil
}
