package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/racelens/racelens/internal/config"
	"github.com/racelens/racelens/internal/logger"
)

// Version information set via ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	verbose    bool
	configFile string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "racelens",
	Short: "Race-relevance analysis for lock-free data structure traces",
	Long: `Racelens post-processes execution traces of randomized concurrent
test programs and highlights which memory accesses are actually racy.

It classifies each recorded access against the trace's global reader and
writer sets, resolves every stack frame to the source token that produced
it, and strips synchronization-internal noise so an investigator sees
true bugs instead of library plumbing.

Configure denylists in:
  - ~/.racelens/config.yaml (global)
  - .racelens/config.yaml (project-specific)`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("racelens %s\n", Version)
		fmt.Printf("  commit: %s\n", Commit)
		fmt.Printf("  built:  %s\n", Date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Override config file path")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Override project directory")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from the persistent flags: an explicit
// --config file, or the merged global/project files.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader(projectDir)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		return loader.LoadFromFile(configFile)
	}
	return loader.Load()
}

// setupLogging initializes the global logger from config, with --verbose
// forcing debug.
func setupLogging(cfg *config.Config) error {
	level := cfg.Settings.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.Init(level, cfg.Settings.LogFile)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
