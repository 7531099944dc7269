// Package cycler is the navigation state machine: a circular cursor over the
// item sequence parsed from the text buffer, plus the copy side effect.
package cycler

import (
	"fmt"
	"log"

	"clipbeat/parser"
)

// Clipboard is the copy capability the engine needs from its host.
type Clipboard interface {
	Write(text string) error
}

// Engine owns only the integer cursor. The text buffer stays with the UI and
// is re-parsed on every navigation, so edits take effect on the very next
// step without any cache invalidation.
type Engine struct {
	clip   Clipboard
	cursor int
}

// Step reports the outcome of one navigation: the item that was copied, its
// position within the sequence, and the copy error when the clipboard write
// failed. Total == 0 means the buffer had no non-blank lines and the call was
// a no-op.
type Step struct {
	Item    parser.Item
	Index   int
	Total   int
	CopyErr error
}

func New(clip Clipboard) *Engine {
	return &Engine{clip: clip}
}

// Advance copies the item under the cursor, then moves the cursor forward
// with wraparound.
func (e *Engine) Advance(text string) Step {
	items := parser.Parse(text)
	if len(items) == 0 {
		return Step{}
	}
	e.clamp(len(items))
	step := e.copyCurrent(items)
	e.cursor = (e.cursor + 1) % len(items)
	return step
}

// Retreat moves the cursor backward with wraparound, then copies. The order
// is the mirror of Advance: copy-then-move going forward, move-then-copy
// going back. Both directions leave the copied item as the one the indicator
// names, and an Advance directly followed by a Retreat re-copies the same
// item.
func (e *Engine) Retreat(text string) Step {
	items := parser.Parse(text)
	if len(items) == 0 {
		return Step{}
	}
	e.clamp(len(items))
	e.cursor = (e.cursor - 1 + len(items)) % len(items)
	return e.copyCurrent(items)
}

// Cursor exposes the raw cursor position. It points at the item the next
// Advance will copy.
func (e *Engine) Cursor() int { return e.cursor }

// clamp pulls the cursor back into range after the sequence shrank.
func (e *Engine) clamp(n int) {
	if e.cursor >= n {
		e.cursor = n - 1
	}
}

func (e *Engine) copyCurrent(items []parser.Item) Step {
	step := Step{Item: items[e.cursor], Index: e.cursor, Total: len(items)}
	if err := e.clip.Write(step.Item.Text); err != nil {
		log.Printf("clipboard write failed: %v", err)
		step.CopyErr = err
	}
	return step
}

// Label formats the current/total indicator for a completed step.
func (s Step) Label() string {
	if s.Total == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", s.Index+1, s.Total)
}
