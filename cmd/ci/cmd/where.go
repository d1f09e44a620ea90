package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which knowledge base would be used",
	Long: `Show the knowledge base directory and the source it was found through.
When nothing usable is found, every location tried is listed with the
reason it was rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pathOnly, _ := cmd.Flags().GetBool("path-only")

		d, err := newDeps()
		if err != nil {
			return err
		}

		loc, err := d.locate()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if pathOnly {
			fmt.Fprintln(out, loc.Path)
			return nil
		}

		fmt.Fprintf(out, "Knowledge base: %s\n", loc.Path)
		fmt.Fprintf(out, "Source:         %s\n", loc.Source)
		if d.project != nil {
			fmt.Fprintf(out, "Project:        %s\n", d.project.Path)
		}

		// Candidates rejected before the winner.
		if skipped := loc.Tried[:len(loc.Tried)-1]; len(skipped) > 0 {
			fmt.Fprintln(out, "Skipped:")
			for _, c := range skipped {
				fmt.Fprintf(out, "  [%s] %s (%s)\n", c.Source, c.Path, c.Reason)
			}
		}
		return nil
	},
}

func init() {
	whereCmd.Flags().Bool("path-only", false, "Print only the directory")
	rootCmd.AddCommand(whereCmd)
}
