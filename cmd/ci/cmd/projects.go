package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/collabintel/ci/internal/core"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects integrated with the knowledge base",
	Long: `List the project directories under <knowledge base>/Projects with their
integration status and assistant instructions file.

Without a Projects directory, ~/Projects, ~/Documents/Projects,
~/repositories, ~/code and ~/src are scanned for integrated projects
instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := newDeps()
		if err != nil {
			return err
		}
		loc, err := d.locate()
		if err != nil {
			return err
		}

		projects, err := core.ListProjects(loc.Path)
		if err != nil {
			return err
		}
		scanned := false
		if len(projects) == 0 {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("getting home directory: %w", err)
			}
			projects = core.ScanProjects(core.ExpandProjectDirs(core.DefaultProjectDirs, home), loc.Path)
			scanned = true
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printProjectsJSON(out, projects)
		}

		fmt.Fprintf(out, "Knowledge base: %s\n", loc.Path)
		if scanned {
			fmt.Fprintf(out, "%s\n", mutedStyle.Render(fmt.Sprintf("No projects in %s; scanned common locations.", filepath.Join(loc.Path, core.ProjectsDir))))
		}
		if len(projects) == 0 {
			fmt.Fprintln(out, "No integrated projects found.")
			return nil
		}

		fmt.Fprintf(out, "\n%s\n", headerStyle.Render(fmt.Sprintf("Projects (%d):", len(projects))))
		width := 0
		for _, p := range projects {
			width = max(width, len(p.Name))
		}
		for _, p := range projects {
			status, style := "not integrated", errorStyle
			if p.Integrated {
				status, style = "integrated", activeStyle
			}
			status = style.Render(status) + strings.Repeat(" ", len("not integrated")-len(status))
			instructions := p.Instructions
			if instructions == "" {
				instructions = "none"
			}
			fmt.Fprintf(out, "  %-*s  %s  %s\n", width, p.Name, status, mutedStyle.Render("instructions: "+instructions))
			fmt.Fprintf(out, "  %-*s  %s\n", width, "", mutedStyle.Render(p.Path))
		}
		return nil
	},
}

func printProjectsJSON(w io.Writer, projects []core.ProjectStatus) error {
	if projects == nil {
		projects = []core.ProjectStatus{}
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	projectsCmd.Flags().Bool("json", false, "Print projects as JSON")
	rootCmd.AddCommand(projectsCmd)
}
