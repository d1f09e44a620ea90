package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/system"
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List the assistants ci can launch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		selected := core.SelectSystem("", os.Getenv, d.settings)

		out := cmd.OutOrStdout()
		for _, s := range system.All() {
			marker := "  "
			if s.Name() == selected {
				marker = activeStyle.Render("* ")
			}
			installed := mutedStyle.Render("not installed")
			if s.IsInstalled() {
				installed = activeStyle.Render("installed")
			}
			auto := ""
			if !s.SupportsAutoAccept() {
				auto = mutedStyle.Render(" (no auto-accept)")
			}
			fmt.Fprintf(out, "%s%-16s %-16s %s%s\n", marker, s.Name(), s.DisplayName(), installed, auto)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(systemsCmd)
}
