// ecosim runs a predator and prey ecosystem on a wrapping grid.
//
// Usage:
//
//	ecosim run               - Run headless and print populations per tick
//	ecosim watch             - Animate the grid in the terminal
//	ecosim serve             - Start SSH server offering the viewer
//	ecosim list              - List scenarios and layouts
//	ecosim history [run-id]  - Show recorded runs
//	ecosim config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search path, then embedded)
//	--scenario <id>     - Apply a registered scenario
//	--seed <value>      - Override the RNG seed
//	--db <path>         - Run history database
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecology/internal/config"
	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/registry"

	// Import scenarios to register them
	_ "github.com/vovakirdan/tui-ecology/internal/scenarios"
)

// layoutDir is where layouts are looked up by ID.
const layoutDir = "layouts"

var (
	// Global flags
	flagConfig   string
	flagScenario string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecosim",
	Short: "Predator and prey on a wrapping grid",
	Long: `ecosim simulates mice and owls on a toroidal grid. Mice graze and
breed, owls hunt them, and both starve when their energy runs out.

Available commands:
  run      - Headless run printing populations per tick
  watch    - Animated terminal viewer
  serve    - SSH server offering the viewer
  list     - Scenarios and layouts
  history  - Recorded runs
  config   - Effective configuration

Examples:
  ecosim run --ticks 200
  ecosim run --scenario savanna --csv out/savanna.csv --record
  ecosim watch --scenario duel
  ecosim serve --ssh :2222
  ecosim history --longest`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "", "Scenario to apply (see 'ecosim list')")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (overrides the configuration)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from configuration)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a stderr logger at the level given by --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig resolves the configuration from file, scenario and flags, in that order.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if err := registry.Resolve(flagScenario, &cfg); err != nil {
		return cfg, fmt.Errorf("%w (run 'ecosim list' to see available scenarios)", err)
	}

	if rootCmd.PersistentFlags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}

	return cfg, nil
}

// loadLayout reads a layout given as a file path or as an ID under ./layouts.
// An empty ref means no layout.
func loadLayout(ref string) (*layout.Layout, error) {
	if ref == "" {
		return nil, nil
	}

	loader := layout.NewLoader(layoutDir)
	if _, err := os.Stat(ref); err == nil {
		lay, err := loader.LoadFile(ref)
		if err != nil {
			return nil, err
		}
		return &lay, nil
	}

	lay, err := loader.LoadByID(ref)
	if err != nil {
		return nil, err
	}
	return &lay, nil
}

// scenarioName labels runs in the history database.
func scenarioName(lay *layout.Layout) string {
	switch {
	case lay != nil:
		return "layout:" + lay.ID
	case flagScenario != "":
		return flagScenario
	case flagConfig != "":
		return "custom"
	default:
		return "classic"
	}
}
