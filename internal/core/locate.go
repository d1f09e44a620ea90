package core

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Environment variables read by ci.
const (
	EnvPath             = "CI_PATH"
	EnvSystem           = "CI_SYSTEM"
	EnvForceWindowTitle = "CI_FORCE_WINDOW_TITLE"
)

// ConventionalDir is a well-known install location. Home-relative entries
// start with "~/".
type ConventionalDir struct {
	Path   string
	Source Source
}

// DefaultConventionalDirs are tried after every configured source.
var DefaultConventionalDirs = []ConventionalDir{
	{Path: "~/Documents/Projects/CollaborativeIntelligence", Source: SourceSearch},
	{Path: "~/Projects/CollaborativeIntelligence", Source: SourceSearch},
	{Path: "~/CollaborativeIntelligence", Source: SourceSearch},
	{Path: "/usr/local/share/CollaborativeIntelligence", Source: SourceDefault},
}

// Resolver locates the knowledge base root.
type Resolver struct {
	Getenv       func(string) string
	WorkDir      string
	HomeDir      string
	Conventional []ConventionalDir

	// Project is the already-loaded settings file. When nil and
	// ProjectSearched is false the resolver searches upward from WorkDir
	// itself.
	Project *ProjectConfig

	// ProjectSearched reports that the caller already looked for the
	// settings file, so a nil Project means none or an unreadable one.
	ProjectSearched bool

	Logger *zap.Logger
}

// NewResolver creates a Resolver bound to the process environment.
func NewResolver(logger *zap.Logger) (*Resolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &Resolver{
		Getenv:       os.Getenv,
		WorkDir:      wd,
		HomeDir:      home,
		Conventional: DefaultConventionalDirs,
		Logger:       logger,
	}, nil
}

// Resolve returns the first candidate that is an existing readable directory.
//
// Precedence (highest to lowest):
//  1. override (explicit; fails immediately when invalid)
//  2. CI_PATH environment variable
//  3. ci_path in the nearest .ci-config.json
//  4. Conventional locations, in order
func (r *Resolver) Resolve(override string) (*Location, error) {
	log := r.logger()
	var tried []Candidate

	attempt := func(src Source, path string) *Location {
		reason := checkDir(path)
		tried = append(tried, Candidate{Source: src, Path: path, Reason: reason})
		if reason != "" {
			log.Debug("knowledge base candidate rejected",
				zap.String("source", string(src)), zap.String("path", path), zap.String("reason", reason))
			return nil
		}
		log.Debug("knowledge base resolved", zap.String("source", string(src)), zap.String("path", path))
		return &Location{Path: path, Source: src, Valid: true, Tried: tried}
	}

	// 1. Explicit override.
	if override != "" {
		if loc := attempt(SourceExplicit, r.abs(r.expand(override), r.WorkDir)); loc != nil {
			return loc, nil
		}
		return nil, &PathNotFoundError{Candidates: tried}
	}

	// 2. Environment.
	if v := r.getenv(EnvPath); v != "" {
		if loc := attempt(SourceEnv, r.abs(r.expand(v), r.WorkDir)); loc != nil {
			return loc, nil
		}
	}

	// 3. Project settings file.
	project, err := r.project()
	if err != nil {
		log.Warn("ignoring unreadable project settings", zap.Error(err))
	}
	if project != nil && project.CIPath != "" {
		p := r.abs(r.expand(project.CIPath), project.Dir())
		if loc := attempt(SourceConfig, p); loc != nil {
			return loc, nil
		}
	}

	// 4. Conventional locations.
	for _, c := range r.Conventional {
		if loc := attempt(c.Source, r.expand(c.Path)); loc != nil {
			return loc, nil
		}
	}

	return nil, &PathNotFoundError{Candidates: tried}
}

func (r *Resolver) project() (*ProjectConfig, error) {
	if r.Project != nil || r.ProjectSearched {
		return r.Project, nil
	}
	if r.WorkDir == "" {
		return nil, nil
	}
	return DiscoverProjectConfig(r.WorkDir)
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv == nil {
		return ""
	}
	return r.Getenv(key)
}

func (r *Resolver) expand(p string) string {
	getenv := r.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return expandPath(p, r.HomeDir, getenv)
}

func (r *Resolver) abs(p, base string) string {
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
