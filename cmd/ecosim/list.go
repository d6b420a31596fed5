package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ecology/internal/layout"
	"github.com/vovakirdan/tui-ecology/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios and layouts",
	Long:  `Shows the registered scenarios and the layouts found under ./layouts.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	scenarios := registry.List()

	fmt.Fprintln(out, "Scenarios:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, s := range scenarios {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	layouts, err := layout.NewLoader(layoutDir).LoadAll()
	if err == nil && len(layouts) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Layouts:")
		fmt.Fprintln(out)
		for _, l := range layouts {
			fmt.Fprintf(out, "  %-12s  %3dx%-3d  %3d organisms  %s\n",
				l.ID, l.Width, l.Height, len(l.Organisms), l.Name)
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		newLogger("ecosim").Debug("cannot list layouts", "dir", layoutDir, "error", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'ecosim run --scenario <id>' or 'ecosim watch --layout <id>'.")
}
