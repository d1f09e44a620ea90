package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core/launch"
)

var showCmd = &cobra.Command{
	Use:   "show <agent>",
	Short: "Show an agent's memory",
	Long: `Show the memory that would be loaded for an agent. On a terminal the
markdown is rendered; use --raw for the exact text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		d, err := newDeps()
		if err != nil {
			return err
		}

		_, res, err := d.knowledgeBase()
		if err != nil {
			return err
		}

		prof, ok := res.Registry.Lookup(args[0])
		if !ok {
			return &launch.AgentNotFoundError{Name: args[0], Available: res.Registry.Names()}
		}

		out := cmd.OutOrStdout()
		if !raw {
			fmt.Fprintf(out, "%s", headerStyle.Render(prof.Name))
			if prof.Description != "" {
				fmt.Fprintf(out, " - %s", prof.Description)
			}
			fmt.Fprintln(out)
			source := prof.MemorySource
			if source == "" {
				source = "AGENTS.md summary"
			}
			fmt.Fprintln(out, mutedStyle.Render("Memory: "+source))
			fmt.Fprintln(out)
		}

		if raw || !isTerminal(os.Stdout) {
			fmt.Fprint(out, prof.Memory)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(terminalWidth(80), 120)),
		)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		rendered, err := r.Render(prof.Memory)
		if err != nil {
			return fmt.Errorf("rendering memory: %w", err)
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the memory without rendering")
	rootCmd.AddCommand(showCmd)
}
