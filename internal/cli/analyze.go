package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/racelens/racelens/internal/analyze"
	"github.com/racelens/racelens/internal/event"
	"github.com/racelens/racelens/internal/logger"
	"github.com/racelens/racelens/internal/report"
	"github.com/racelens/racelens/internal/source"
)

var (
	analyzeOutput string
	analyzeSave   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <trace-file>",
	Short: "Enrich a recorded trace with race relevance",
	Long: `Analyze a trace dump (JSON Lines, one event per line) produced by an
instrumented test run.

Each transition is flagged relevant if its address was written by more
than one thread, or written by one thread and read by another. Stack
frames are resolved to their source tokens and synchronization-internal
frames and events are stripped per the configured denylists.

Example:
  racelens analyze trace.jsonl
  racelens analyze trace.jsonl -o enriched.jsonl --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write enriched events to file (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the run to the report store")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	tracePath := args[0]
	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := event.DecodeAll(f)
	if err != nil {
		return err
	}
	total := len(events)

	pipeline := analyze.NewPipeline(source.NewCache(), analyze.Denylists{
		FrameFunctions:    cfg.Sanitize.FrameFunctions,
		InternalLines:     cfg.Sanitize.InternalLines,
		InternalFunctions: cfg.Sanitize.InternalFunctions,
	})
	enriched := pipeline.Run(events)

	relevant := 0
	for _, ev := range enriched {
		if ev.IsTransition() && ev.Relevant {
			relevant++
		}
	}

	logger.Info().
		Int("events", total).
		Int("kept", len(enriched)).
		Int("relevant", relevant).
		Msg("Analysis complete")

	if analyzeSave {
		store, err := report.NewSQLiteStore(cfg.Settings.Database)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		run, err := store.SaveRun(&report.Run{
			Source:        tracePath,
			RelevantCount: relevant,
			DroppedCount:  total - len(enriched),
		}, enriched)
		if err != nil {
			return err
		}
		logger.Info().
			Str("run_id", run.ID).
			Msg("Saved run")
	}

	out := os.Stdout
	if analyzeOutput != "" {
		out, err = os.Create(analyzeOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = out.Close() }()
	}

	enc := json.NewEncoder(out)
	for _, ev := range enriched {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}

	return nil
}
