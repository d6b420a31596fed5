package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ecology/internal/platform/tui"
	"github.com/vovakirdan/tui-ecology/internal/storage"
)

var (
	flagHistoryLimit int
	flagLongest      bool
	flagBrowse       bool
	flagDelete       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long: `Show runs recorded with 'ecosim run --record'.

Without an argument the most recent runs are listed. With a run ID the
run's population samples are printed.

Examples:
  ecosim history
  ecosim history --longest --scenario classic
  ecosim history 12
  ecosim history 12 --delete
  ecosim history --browse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&flagLongest, "longest", false, "Rank runs by how long both species coexisted")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive history browser")
	historyCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the given run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}
		if flagDelete {
			if _, err := store.RunByID(id); err != nil {
				return err
			}
			if err := store.DeleteRun(id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted run #%d\n", id)
			return nil
		}
		return printRun(out, store, id)
	}

	var runs []storage.RunRecord
	if flagLongest {
		runs, err = store.LongestCoexistence(flagScenario, flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "Use 'ecosim run --record' to record one.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCENARIO\tSEED\tGRID\tTICKS\tSURVIVED\tPREY\tPREDATORS\tDATE")
	for _, r := range runs {
		fmt.Fprintf(tw, "#%d\t%s\t%d\t%dx%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Scenario, r.Seed, r.Width, r.Height, r.Ticks,
			r.Survived(), r.FinalPrey, r.FinalPredators,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// printRun prints one run and its samples.
func printRun(out io.Writer, store *storage.Store, id int64) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	points, err := store.RunSamples(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Run #%d  %s  seed %d  %dx%d\n", run.ID, run.Scenario, run.Seed, run.Width, run.Height)
	if run.ExtinctTick > 0 {
		fmt.Fprintf(out, "Extinction after tick %d of %d\n", run.ExtinctTick, run.Ticks)
	} else {
		fmt.Fprintf(out, "Both species survived %d ticks\n", run.Ticks)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TICK\tPREY\tPREDATORS\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%d\t%d\t\n", p.Tick, p.Prey, p.Predators)
	}
	return tw.Flush()
}
