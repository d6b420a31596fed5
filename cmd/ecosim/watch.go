package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ecology/internal/core"
	"github.com/vovakirdan/tui-ecology/internal/platform/tui"
	"github.com/vovakirdan/tui-ecology/internal/registry"
	"github.com/vovakirdan/tui-ecology/internal/sim"
)

var (
	flagWatchLayout string
	flagTickRate    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate the simulation in the terminal",
	Long: `Open the interactive viewer. Without --scenario, --layout or --config a
scenario picker is shown first.

Controls:
  Space/P   - Run or pause
  N/.       - Single step while paused
  +/-       - Faster / slower
  R         - Restart from the seed
  ?         - Full help
  Q/Ctrl+C  - Quit

Examples:
  ecosim watch
  ecosim watch --scenario savanna --rate 30
  ecosim watch --layout corners`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchLayout, "layout", "", "Layout file or ID under ./layouts to seed from")
	watchCmd.Flags().IntVar(&flagTickRate, "rate", 0, "Ticks per second (default from configuration)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title := "ecosim"
	scenario := flagScenario
	if scenario == "" && flagWatchLayout == "" && flagConfig == "" {
		scenario, err = tui.RunMenu(width)
		if err != nil {
			return err
		}
		if scenario == "" {
			return nil
		}
		if err := registry.Resolve(scenario, &cfg); err != nil {
			return err
		}
	}
	if scenario != "" {
		title += " · " + scenario
	}

	lay, err := loadLayout(flagWatchLayout)
	if err != nil {
		return err
	}
	if lay != nil {
		title += " · " + lay.Name
	}

	session, err := sim.New(cfg, lay)
	if err != nil {
		return err
	}

	rate := cfg.Run.TickRate
	if cmd.Flags().Changed("rate") {
		rate = flagTickRate
	}

	gw, gh := session.Engine().GridDimensions()
	if gw+2 > width || gh+8 > height {
		newLogger("ecosim").Warn("grid larger than terminal, view will be clipped",
			"grid", fmt.Sprintf("%dx%d", gw, gh),
			"terminal", fmt.Sprintf("%dx%d", width, height),
		)
	}

	return tui.Run(session, title, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: rate,
	})
}
