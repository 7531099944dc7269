// Package clipboard wraps the OS clipboard behind a small bridge that
// degrades to a warning no-op when no display environment is available.
package clipboard

import (
	"errors"
	"log"

	"golang.design/x/clipboard"
)

// ErrUnavailable is returned by Write when the clipboard could not be
// initialized at startup (headless session, missing X11/Wayland).
var ErrUnavailable = errors.New("clipboard unavailable")

type Bridge struct {
	available bool
}

// New initializes the OS clipboard. Failure is not fatal: the bridge still
// exists, but every Write reports ErrUnavailable so callers can warn and
// keep cycling for highlight/display purposes.
func New() *Bridge {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, copies will be skipped: %v", err)
		return &Bridge{}
	}
	return &Bridge{available: true}
}

// Available reports whether the OS clipboard was initialized.
func (b *Bridge) Available() bool { return b.available }

// Write replaces the clipboard contents with text.
func (b *Bridge) Write(text string) error {
	if !b.available {
		return ErrUnavailable
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// Read returns the current clipboard text, or "" when empty or unavailable.
func (b *Bridge) Read() string {
	if !b.available {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}
