package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecology/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagVarySeed    bool
	flagServeLayout string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ecosim SSH server",
	Long: `Start an SSH server that shows the viewer to every connection.

Each SSH connection runs its own simulation; sessions share nothing.
Without --scenario or --layout each session starts with a scenario picker.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ecosim/host_key

Examples:
  ecosim serve                           # Listen on :23234 with auto-generated key
  ecosim serve --ssh :2222               # Listen on port 2222
  ecosim serve --scenario savanna        # Skip the picker
  ecosim serve --vary-seed               # A different seed per session

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagVarySeed, "vary-seed", false, "Offset the seed by the session number")
	serveCmd.Flags().StringVar(&flagServeLayout, "layout", "", "Layout file or ID under ./layouts to seed from")
}

func runServe(_ *cobra.Command, _ []string) error {
	simCfg, err := loadConfig()
	if err != nil {
		return err
	}
	lay, err := loadLayout(flagServeLayout)
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Sim = simCfg
	cfg.Layout = lay
	cfg.Scenario = flagScenario
	cfg.VarySeed = flagVarySeed

	server, err := tui.NewSSHServer(cfg, newLogger("ecosim-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting ecosim SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
