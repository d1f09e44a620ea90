package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/collabintel/ci/internal/core/kb"
	"github.com/collabintel/ci/internal/core/system"
)

// Mode selects how a session is delivered.
type Mode int

const (
	// ModeInteractive starts the assistant with the bundle as first prompt.
	ModeInteractive Mode = iota
	// ModePrint writes the bundle to Stdout and starts nothing.
	ModePrint
)

// maxInlinePrompt is the largest bundle passed as a single argument. Linux
// rejects any one argument over 128 KiB (MAX_ARG_STRLEN) with E2BIG.
const maxInlinePrompt = 96 << 10

// interruptGrace is how long a cancelled assistant gets to exit after the
// interrupt before it is killed.
const interruptGrace = 5 * time.Second

// Launcher starts sessions on one system.
type Launcher struct {
	System    system.System
	ExtraArgs []string
	Dir       string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Title is nil when the terminal title should not be touched.
	Title TitleController

	// LookPath and Run are exec.LookPath and (*exec.Cmd).Run unless set.
	LookPath func(file string) (string, error)
	Run      func(cmd *exec.Cmd) error

	Logger *zap.Logger
}

// Load prepares a session for req and starts it.
func (l *Launcher) Load(ctx context.Context, reg *kb.Registry, req Request, mode Mode) (*Session, error) {
	sess, err := Prepare(reg, req)
	if err != nil {
		return nil, err
	}
	return sess, l.Start(ctx, sess, mode)
}

// Start delivers a prepared session. In interactive mode it blocks until
// the assistant exits. The terminal title is restored on every return path.
func (l *Launcher) Start(ctx context.Context, sess *Session, mode Mode) error {
	log := l.logger().With(zap.String("agent", sess.Agent), zap.String("session", sess.ID))

	if mode == ModePrint {
		_, err := io.WriteString(l.stdout(), sess.Bundle())
		return err
	}

	if l.System == nil {
		return fmt.Errorf("no launch system configured")
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(l.System.Binary())
	if err != nil {
		return &LauncherMissingError{
			System: l.System.DisplayName(),
			Binary: l.System.Binary(),
			Hint:   l.System.InstallHint(),
		}
	}

	if sess.Policy.AutoAccept && !l.System.SupportsAutoAccept() {
		log.Warn("auto-accept requested but not supported; launching with prompts", zap.String("system", l.System.Name()))
	}

	prompt, bundleFile, removeBundle, err := promptFor(sess, log)
	if err != nil {
		return err
	}

	sc := l.System.Command(system.Invocation{
		Prompt:     prompt,
		AutoAccept: sess.Policy.AutoAccept,
		ExtraArgs:  l.ExtraArgs,
	})

	cmd := exec.CommandContext(ctx, bin, sc.Args...)
	cmd.Dir = l.Dir
	cmd.Env = append(append(os.Environ(), sess.Env()...), sc.Env...)
	if bundleFile != "" {
		cmd.Env = append(cmd.Env, "CI_BUNDLE_FILE="+bundleFile)
	}
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = interruptGrace

	release := AcquireTitle(l.Title, sess.Title(), log)
	defer func() {
		release()
		removeBundle()
	}()

	log.Debug("starting assistant",
		zap.String("system", l.System.Name()),
		zap.String("binary", bin),
		zap.Bool("autoAccept", sess.Policy.AutoAccept),
		zap.String("policySource", string(sess.Policy.Source)))

	run := l.Run
	if run == nil {
		run = (*exec.Cmd).Run
	}
	if err = run(cmd); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("session interrupted: %w", ctx.Err())
		}
		return fmt.Errorf("running %s: %w", l.System.Binary(), err)
	}
	return nil
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout == nil {
		return os.Stdout
	}
	return l.Stdout
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// promptFor returns the initial prompt for sess. Bundles too large for one
// argument are written to a private temp file and the prompt points the
// assistant at it; remove deletes that file and is always safe to call.
func promptFor(sess *Session, log *zap.Logger) (prompt, file string, remove func(), err error) {
	bundle := sess.Bundle()
	if len(bundle) <= maxInlinePrompt {
		return bundle, "", func() {}, nil
	}

	f, err := os.CreateTemp("", "ci-"+sess.Agent+"-*.md")
	if err != nil {
		return "", "", nil, fmt.Errorf("creating bundle file: %w", err)
	}
	remove = func() { _ = os.Remove(f.Name()) }

	if _, err := io.WriteString(f, bundle); err != nil {
		_ = f.Close()
		remove()
		return "", "", nil, fmt.Errorf("writing bundle file: %w", err)
	}
	if err := f.Close(); err != nil {
		remove()
		return "", "", nil, fmt.Errorf("writing bundle file: %w", err)
	}

	log.Debug("bundle too large for an argument; passing a file",
		zap.Int("bytes", len(bundle)), zap.String("file", f.Name()))

	prompt = fmt.Sprintf("You are the %s agent. Your full agent memory (%d bytes) is in %s. "+
		"Read that file completely before doing anything else and follow it for the rest of this session.",
		sess.Agent, len(bundle), f.Name())
	return prompt, f.Name(), remove, nil
}
