package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecology/internal/config"
)

var (
	flagWrite string
	flagInit  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file, --scenario
and --seed, as YAML.

Examples:
  ecosim config
  ecosim config --scenario savanna --write savanna.yaml
  ecosim config --init        # write ~/.ecosim/configs/ecosim.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWrite, "write", "", "Write the configuration to this file instead of printing it")
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the configuration to the user config path")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		newLogger("ecosim").Warn("configuration is invalid", "error", err)
	}

	path := flagWrite
	if flagInit {
		path = config.UserConfigPath()
		if path == "" {
			return fmt.Errorf("cannot determine home directory")
		}
	}

	if path != "" {
		if err := cfg.WriteYAML(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
