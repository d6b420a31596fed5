package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecology/internal/sim"
	"github.com/vovakirdan/tui-ecology/internal/storage"
	"github.com/vovakirdan/tui-ecology/internal/telemetry"
)

var (
	flagTicks            int
	flagCSV              string
	flagRecord           bool
	flagStopOnExtinction bool
	flagLayout           string
	flagReportEvery      int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation without a viewer",
	Long: `Run the simulation for a fixed number of ticks and print the
population after every tick:

  tick N population P (prey A, predators B)

Telemetry can be written as CSV and the run recorded in the history
database. Ctrl+C stops the run after the current tick.

Examples:
  ecosim run
  ecosim run --ticks 500 --seed 42
  ecosim run --scenario savanna --csv out/savanna.csv
  ecosim run --layout ring --stop-on-extinction --record`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Number of ticks (default from configuration)")
	runCmd.Flags().StringVar(&flagCSV, "csv", "", "Write per-tick telemetry to this CSV file")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the history database")
	runCmd.Flags().BoolVar(&flagStopOnExtinction, "stop-on-extinction", false, "Stop once either species has died out")
	runCmd.Flags().StringVar(&flagLayout, "layout", "", "Layout file or ID under ./layouts to seed from")
	runCmd.Flags().IntVar(&flagReportEvery, "report-every", -1, "Log a telemetry line every N ticks (0 disables)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger := newLogger("ecosim")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Run.Ticks = flagTicks
	}
	if flagReportEvery >= 0 {
		cfg.Run.ReportEvery = flagReportEvery
	}
	if flagCSV != "" {
		cfg.Telemetry.CSVPath = flagCSV
	}

	lay, err := loadLayout(flagLayout)
	if err != nil {
		return err
	}

	session, err := sim.New(cfg, lay)
	if err != nil {
		return err
	}
	cfg = session.Config()

	seeded := session.Seeded()
	logger.Debug("seeded",
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"seed", cfg.Seed,
		"prey", seeded.Prey,
		"predators", seeded.Predator,
		"rejected", session.Rejected(),
	)

	csvw, err := telemetry.CreateCSV(cfg.Telemetry.CSVPath)
	if err != nil {
		return err
	}
	defer csvw.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	var recorded []telemetry.Sample
	ticks := 0

	for ticks < cfg.Run.Ticks {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "tick", ticks)
			break
		}

		smp := session.Step()
		ticks++

		fmt.Fprintf(out, "tick %d population %d (prey %d, predators %d)\n",
			smp.Tick, smp.Population(), smp.Prey, smp.Predators)

		if err := csvw.Write(smp); err != nil {
			return err
		}
		if flagRecord {
			recorded = append(recorded, smp)
		}
		if every := cfg.Run.ReportEvery; every > 0 && smp.Tick%uint64(every) == 0 {
			smp.Log(logger)
		}

		if flagStopOnExtinction && session.Extinct() {
			logger.Info("extinction", "tick", smp.Tick, "prey", smp.Prey, "predators", smp.Predators)
			break
		}
	}

	prey, predators := session.Engine().Counts()
	extinct := session.Collector().ExtinctTick()
	logger.Info("run finished",
		"ticks", ticks,
		"prey", prey,
		"predators", predators,
		"extinct_tick", extinct,
	)

	if err := csvw.Close(); err != nil {
		return err
	}

	if flagRecord {
		return recordRun(cfg.Storage.DBPath, storage.RunRecord{
			Scenario:       scenarioName(lay),
			Seed:           cfg.Seed,
			Width:          cfg.Grid.Width,
			Height:         cfg.Grid.Height,
			Ticks:          ticks,
			FinalPrey:      prey,
			FinalPredators: predators,
			ExtinctTick:    int(extinct),
		}, recorded)
	}
	return nil
}

// recordRun saves one run in the history database.
func recordRun(dbPath string, rec storage.RunRecord, samples []telemetry.Sample) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(rec, samples)
	if err != nil {
		return err
	}

	newLogger("ecosim").Info("run recorded", "id", id, "db", dbPath)
	return nil
}
