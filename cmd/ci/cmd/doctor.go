package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/kb"
	"github.com/collabintel/ci/internal/core/system"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the knowledge base, project settings and assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		problems := 0

		fmt.Fprintln(out, headerStyle.Render("Knowledge base"))
		loc, res, err := d.knowledgeBase()
		var notFound *core.PathNotFoundError
		switch {
		case errors.As(err, &notFound):
			problems++
			printFail(out, "not found")
			for _, c := range notFound.Candidates {
				fmt.Fprintf(out, "      [%s] %s (%s)\n", c.Source, c.Path, c.Reason)
			}
		case errors.Is(err, kb.ErrNoKnowledgeBase):
			problems++
			printOK(out, fmt.Sprintf("location: %s [%s]", loc.Path, loc.Source))
			printFail(out, fmt.Sprintf("%s missing", kb.DescriptorFile))
		case err != nil:
			problems++
			printFail(out, err.Error())
		default:
			printOK(out, fmt.Sprintf("location: %s [%s]", loc.Path, loc.Source))
			printOK(out, fmt.Sprintf("%s: %d agents", kb.DescriptorFile, res.Registry.Len()))
			detail := 0
			for _, p := range res.Registry.Profiles() {
				if p.HasDetail() {
					detail++
				}
			}
			printOK(out, fmt.Sprintf("detail files: %d of %d agents", detail, res.Registry.Len()))
			if n := len(res.Diagnostics); n > 0 {
				printWarn(out, fmt.Sprintf("%d warnings", n))
				for _, diag := range res.Diagnostics {
					fmt.Fprintf(out, "      [%s] %s\n", diag.Kind, diag)
				}
			}
		}

		fmt.Fprintln(out, headerStyle.Render("Project"))
		if d.project == nil {
			fmt.Fprintf(out, "  -  no %s above %s\n", core.ProjectConfigFile, d.workDir)
		} else {
			printOK(out, "settings: "+d.project.Path)
			if d.project.ProjectName != "" {
				printOK(out, "name: "+d.project.ProjectName)
			}
			if res != nil {
				for _, a := range d.project.ActiveAgents {
					if _, found := res.Registry.Lookup(a); !found {
						problems++
						printFail(out, fmt.Sprintf("active agent %q is not in the knowledge base", a))
					}
				}
			}
		}

		fmt.Fprintln(out, headerStyle.Render("Assistant"))
		name := core.SelectSystem("", os.Getenv, d.settings)
		sys, err := system.Lookup(name)
		switch {
		case err != nil:
			problems++
			printFail(out, err.Error())
		case sys.IsInstalled():
			printOK(out, fmt.Sprintf("%s (%s) installed", sys.DisplayName(), sys.Binary()))
		default:
			problems++
			printFail(out, fmt.Sprintf("%s (%s) not found; install it with: %s", sys.DisplayName(), sys.Binary(), sys.InstallHint()))
		}

		if problems > 0 {
			return fmt.Errorf("found %d problem(s)", problems)
		}
		fmt.Fprintln(out, "\nAll good.")
		return nil
	},
}

func printOK(w io.Writer, msg string)   { fmt.Fprintf(w, "  %s %s\n", activeStyle.Render("ok"), msg) }
func printWarn(w io.Writer, msg string) { fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("!!"), msg) }
func printFail(w io.Writer, msg string) { fmt.Fprintf(w, "  %s %s\n", errorStyle.Render("xx"), msg) }

func init() {
	rootCmd.AddCommand(doctorCmd)
}
