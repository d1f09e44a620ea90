package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/kb"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config   *core.ConfigManager
	settings core.Settings
	project  *core.ProjectConfig // nil outside a configured project
	workDir  string
}

// newDeps loads the user config and the nearest project settings file.
// Called lazily by commands that need them.
func newDeps() (*deps, error) {
	config, err := core.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	project, err := core.DiscoverProjectConfig(wd)
	if err != nil {
		// A broken settings file must not block launching agents.
		logger.Warn("ignoring unreadable project settings", zap.Error(err))
		project = nil
	}
	if project != nil {
		logger.Debug("project settings loaded", zap.String("path", project.Path))
	}

	return &deps{
		config:   config,
		settings: cfg.Settings,
		project:  project,
		workDir:  wd,
	}, nil
}

// locate resolves the knowledge base root, honouring --ci-path.
func (d *deps) locate() (*core.Location, error) {
	r, err := core.NewResolver(logger)
	if err != nil {
		return nil, err
	}
	r.WorkDir = d.workDir
	r.Project = d.project
	r.ProjectSearched = true
	return r.Resolve(ciPath)
}

// knowledgeBase resolves and parses the knowledge base.
func (d *deps) knowledgeBase() (*core.Location, *kb.Result, error) {
	loc, err := d.locate()
	if err != nil {
		return nil, nil, err
	}
	res, err := (&kb.Parser{Logger: logger}).Parse(loc.Path)
	if err != nil {
		return loc, nil, err
	}
	return loc, res, nil
}

// isActive reports whether the project lists name in active_agents.
func (d *deps) isActive(name string) bool {
	return d.project.IsActive(name)
}
