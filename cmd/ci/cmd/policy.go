package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core"
)

var policyCmd = &cobra.Command{
	Use:   "policy <agent>",
	Short: "Explain whether an agent would launch with auto-accept",
	Long: `Show the auto-accept decision for an agent and the rule that made it.

Rules are checked in order and the first one that enables auto-accept wins:
  flag        --auto-accept on the command line
  global      auto_accept.global is true
  agent-list  the agent is in auto_accept.agents
  category    auto_accept.agent_load / agent_activate for the command
  default     auto-accept stays off`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, _ := cmd.Flags().GetString("command")
		force, _ := cmd.Flags().GetBool("auto-accept")

		c := core.Command(command)
		if c != core.CommandLoad && c != core.CommandActivate {
			return fmt.Errorf("invalid --command %q: must be %q or %q", command, core.CommandLoad, core.CommandActivate)
		}

		d, err := newDeps()
		if err != nil {
			return err
		}

		p := core.ResolvePolicy(core.PolicyRequest{
			Agent:   args[0],
			Command: c,
			Force:   force,
			Project: d.project,
		})

		state := "off"
		if p.AutoAccept {
			state = warnStyle.Render("on")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Auto-accept for %s (%s): %s [%s]\n", args[0], c, state, p.Source)
		if d.project != nil {
			fmt.Fprintf(out, "Settings: %s\n", d.project.Path)
		} else {
			fmt.Fprintf(out, "Settings: no %s found\n", core.ProjectConfigFile)
		}
		return nil
	},
}

func init() {
	policyCmd.Flags().String("command", string(core.CommandLoad), "Command category: load or activate")
	policyCmd.Flags().Bool("auto-accept", false, "Include the --auto-accept flag in the decision")
	rootCmd.AddCommand(policyCmd)
}
