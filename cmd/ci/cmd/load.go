package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/kb"
	"github.com/collabintel/ci/internal/core/launch"
	"github.com/collabintel/ci/internal/core/system"
	"github.com/collabintel/ci/internal/tui"
)

var loadCmd = &cobra.Command{
	Use:   "load [agent]",
	Short: "Start an assistant session with an agent loaded",
	Long: `Start an assistant session with the agent's memory as its first prompt.

Without an agent name the first entry of active_agents in .ci-config.json
is used. On a terminal with no active agents, a picker is shown.

Auto-accept is decided by, in order: --auto-accept, auto_accept.global,
auto_accept.agents and auto_accept.agent_load.`,
	Example: `  ci load Athena
  ci load Developer -c "Focus on the payment module"
  ci load Athena --print > athena.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd, args, core.CommandLoad)
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate [agent]",
	Short: "Start a session for an agent activated by the project",
	Long: `Same as load, but auto-accept follows auto_accept.agent_activate instead
of auto_accept.agent_load.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLaunch(cmd, args, core.CommandActivate)
	},
}

func init() {
	for _, c := range []*cobra.Command{loadCmd, activateCmd} {
		addLaunchFlags(c)
		rootCmd.AddCommand(c)
	}
}

func addLaunchFlags(c *cobra.Command) {
	c.Flags().StringP("context", "c", "", "Extra context appended to the agent memory")
	c.Flags().StringP("path", "f", "", "Read the agent memory from this file instead of the knowledge base")
	c.Flags().BoolP("prompt", "p", false, "Ask for confirmation before starting the assistant")
	c.Flags().Bool("print", false, "Print the context bundle instead of starting an assistant")
	c.Flags().Bool("auto-accept", false, "Start the assistant without per-action confirmations")
	c.Flags().Bool("agent-info", false, "Add an agent information block (capabilities, usage, environment) to the bundle")
	c.Flags().String("system", "", "Assistant to start (default: $CI_SYSTEM, config, then claude-code)")
}

func runLaunch(cmd *cobra.Command, args []string, command core.Command) error {
	extra, _ := cmd.Flags().GetString("context")
	memoryPath, _ := cmd.Flags().GetString("path")
	ask, _ := cmd.Flags().GetBool("prompt")
	printOnly, _ := cmd.Flags().GetBool("print")
	force, _ := cmd.Flags().GetBool("auto-accept")
	systemFlag, _ := cmd.Flags().GetString("system")
	agentInfo, _ := cmd.Flags().GetBool("agent-info")

	d, err := newDeps()
	if err != nil {
		return err
	}

	loc, res, err := d.knowledgeBase()
	if err != nil {
		return err
	}

	name, err := selectAgent(d, res.Registry, args)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	sess, err := launch.Prepare(res.Registry, launch.Request{
		Agent:         name,
		ExtraContext:  extra,
		MemoryPath:    memoryPath,
		Command:       command,
		Force:         force,
		Project:       d.project,
		KnowledgeBase: loc.Path,
		AgentInfo:     agentInfo,
		WorkDir:       d.workDir,
	})
	if err != nil {
		// Skipped headings are the usual reason an agent is missing.
		printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
		return err
	}

	l := &launch.Launcher{
		ExtraArgs: d.settings.ExtraArgs,
		Dir:       d.workDir,
		Stdin:     os.Stdin,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		Logger:    logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if printOnly {
		return l.Start(ctx, sess, launch.ModePrint)
	}

	sys, err := system.Lookup(core.SelectSystem(systemFlag, os.Getenv, d.settings))
	if err != nil {
		return err
	}
	l.System = sys

	if ask {
		ok, err := confirmLaunch(sess, sys)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Launch cancelled.")
			return nil
		}
	}

	if d.settings.WindowTitleEnabled() {
		l.Title = launch.NewTitleController(os.Stdout, os.Stdout.Fd(), os.Getenv(core.EnvForceWindowTitle) == "true")
	}

	logger.Info("launching agent",
		zap.String("agent", sess.Agent),
		zap.String("system", sys.Name()),
		zap.String("knowledgeBase", loc.Path),
		zap.String("source", string(loc.Source)))

	status := fmt.Sprintf("Loading %s into %s", sess.Agent, sys.DisplayName())
	if sess.Policy.AutoAccept {
		status += warnStyle.Render(fmt.Sprintf(" [auto-accept: %s]", sess.Policy.Source))
	}
	fmt.Fprintln(cmd.ErrOrStderr(), status)

	return l.Start(ctx, sess, launch.ModeInteractive)
}

// selectAgent returns the agent named on the command line, else the project's
// first active agent, else asks on a terminal.
func selectAgent(d *deps, reg *kb.Registry, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if name := d.project.DefaultAgent(); name != "" {
		logger.Debug("using active agent from project settings", zap.String("agent", name))
		return name, nil
	}
	if !interactive() {
		return "", fmt.Errorf("no agent given and no active_agents in %s; run 'ci agents' to list agents", core.ProjectConfigFile)
	}
	return tui.PickAgent(reg, d.isActive, os.Stdin, os.Stdout)
}

// confirmLaunch asks before starting the assistant. The dialog defaults to
// No when auto-accept is on.
func confirmLaunch(sess *launch.Session, sys system.System) (bool, error) {
	if !interactive() {
		return false, fmt.Errorf("--prompt needs an interactive terminal")
	}
	msg := fmt.Sprintf("Launch %s with agent %s now?", sys.DisplayName(), sess.Agent)
	var warning string
	if sess.Policy.AutoAccept {
		warning = fmt.Sprintf("Auto-accept is on (%s). Actions will run without confirmation.", sess.Policy.Source)
		if !sys.SupportsAutoAccept() {
			warning = fmt.Sprintf("Auto-accept is on but %s does not support it.", sys.DisplayName())
		}
	}
	return tui.Confirm(msg, warning, os.Stdin, os.Stdout)
}
