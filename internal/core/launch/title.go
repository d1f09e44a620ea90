package launch

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// TitleController saves, sets and restores the terminal window title.
type TitleController interface {
	Save() error
	Set(title string) error
	Restore() error
}

// xtermTitle uses the xterm title stack: CSI 22 pushes the current title,
// CSI 23 pops it back. Terminals without a stack ignore both.
type xtermTitle struct {
	w io.Writer
}

func (x *xtermTitle) Save() error {
	_, err := io.WriteString(x.w, "\x1b[22;0t")
	return err
}

func (x *xtermTitle) Set(title string) error {
	_, err := fmt.Fprintf(x.w, "\x1b]0;%s\x07", sanitizeTitle(title))
	return err
}

func (x *xtermTitle) Restore() error {
	_, err := io.WriteString(x.w, "\x1b[23;0t")
	return err
}

// NewTitleController returns a controller writing to w when fd is a
// terminal or force is set, and nil otherwise.
func NewTitleController(w io.Writer, fd uintptr, force bool) TitleController {
	if !force && !term.IsTerminal(int(fd)) {
		return nil
	}
	return &xtermTitle{w: w}
}

// AcquireTitle saves the current title and sets a new one. The returned
// release restores the saved title; it is safe to call more than once.
// A nil controller yields a no-op release.
func AcquireTitle(tc TitleController, title string, log *zap.Logger) (release func()) {
	if tc == nil {
		return func() {}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := tc.Save(); err != nil {
		log.Debug("cannot save terminal title", zap.Error(err))
		return func() {}
	}
	if err := tc.Set(title); err != nil {
		log.Debug("cannot set terminal title", zap.Error(err))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := tc.Restore(); err != nil {
				log.Debug("cannot restore terminal title", zap.Error(err))
			}
		})
	}
}

func sanitizeTitle(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
