package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core/kb"
)

var agentsCmd = &cobra.Command{
	Use:     "agents",
	Aliases: []string{"list", "ls"},
	Short:   "List the agents in the knowledge base",
	Long: `List the agents described by the knowledge base's AGENTS.md, in the
order they appear there. Agents listed in the project's active_agents are
marked. Problems found while reading are reported on stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sorted, _ := cmd.Flags().GetBool("sort")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := newDeps()
		if err != nil {
			return err
		}

		loc, res, err := d.knowledgeBase()
		if err != nil {
			return err
		}

		profiles := res.Registry.Profiles()
		if sorted {
			profiles = res.Registry.Sorted()
		}

		if asJSON {
			return printAgentsJSON(cmd, d, profiles)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Knowledge base: %s [%s]\n", loc.Path, loc.Source)

		if len(profiles) == 0 {
			fmt.Fprintln(out, "No agents found.")
		} else {
			fmt.Fprintf(out, "%s (%d):\n", headerStyle.Render("Agents"), len(profiles))

			nameWidth := 0
			for _, p := range profiles {
				nameWidth = max(nameWidth, len(p.Name))
			}
			width := terminalWidth(0)

			for _, p := range profiles {
				line := fmt.Sprintf("  %-*s  %s", nameWidth, p.Name, p.Description)
				line = strings.TrimRight(line, " ")
				if width > 20 {
					line = ansi.Truncate(line, width-10, "...")
				}
				if d.isActive(p.Name) {
					line += " " + activeStyle.Render("(active)")
				}
				fmt.Fprintln(out, line)
			}
		}

		printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
		return nil
	},
}

type agentJSON struct {
	kb.Profile
	Active bool `json:"active"`
}

func printAgentsJSON(cmd *cobra.Command, d *deps, profiles []kb.Profile) error {
	list := make([]agentJSON, len(profiles))
	for i, p := range profiles {
		list[i] = agentJSON{Profile: p, Active: d.isActive(p.Name)}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding agents: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func init() {
	agentsCmd.Flags().Bool("sort", false, "Sort agents by name instead of descriptor order")
	agentsCmd.Flags().Bool("json", false, "Print agents as JSON")
	rootCmd.AddCommand(agentsCmd)
}
