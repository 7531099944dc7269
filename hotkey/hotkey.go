// Package hotkey bridges OS-level global key events into the application's
// single-threaded action stream. The hook runs on its own goroutine; matched
// actions are handed to a notify sink which is responsible for marshaling
// them onto the UI loop (the app wires it to tea.Program.Send). Nothing in
// this package touches UI state.
package hotkey

import (
	"fmt"
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Action names a navigation action a hot-key can trigger.
type Action string

const (
	ActionNext Action = "next"
	ActionPrev Action = "prev"
)

// pasteCombo always aliases to ActionNext: pasting is how an item usually
// leaves this window, and the next cue should be staged right after.
const pasteCombo = "ctrl+v"

// BindingError reports a combo the dispatcher could not register. One bad
// binding never blocks the others.
type BindingError struct {
	Action Action
	Combo  string
	Err    error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("hotkey %s (%q): %v", e.Action, e.Combo, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }

// combo is one live registration. It fires when every key has a pressed
// rawcode.
type combo struct {
	action Action
	spec   string
	keys   []keyState
}

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

// Dispatcher owns the keyboard hook and the set of registered combos. The
// registration set is only ever replaced wholesale (RegisterAll/ClearAll),
// never patched, so stale or duplicate bindings cannot survive a settings
// change.
type Dispatcher struct {
	mu        sync.Mutex
	combos    []*combo
	notify    func(Action)
	available bool
	hooked    bool

	actions chan Action
	done    chan struct{}
	closed  sync.Once
}

// New creates a dispatcher. When enableHook is false (headless run or
// explicitly disabled) the keyboard hook is never installed and RegisterAll
// only validates; the in-window key bindings remain the caller's fallback.
func New(enableHook bool) *Dispatcher {
	d := &Dispatcher{
		available: enableHook,
		actions:   make(chan Action, 4),
		done:      make(chan struct{}),
	}
	go d.forward()
	return d
}

// SetNotify installs the sink that receives matched actions. Actions fired
// before a sink is installed are dropped.
func (d *Dispatcher) SetNotify(fn func(Action)) {
	d.mu.Lock()
	d.notify = fn
	d.mu.Unlock()
}

// Available reports whether the global hook backend is usable. False means
// reduced functionality, not an error.
func (d *Dispatcher) Available() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.available
}

// RegisterAll tears down every previous registration and installs the given
// bindings plus the fixed paste alias. Each combo the backend rejects yields
// one *BindingError for that action only; the remaining bindings still
// register. Keys other than "next" and "prev" are ignored.
func (d *Dispatcher) RegisterAll(bindings map[string]string) []error {
	var errs []error
	next := make([]*combo, 0, 3)
	for _, action := range []Action{ActionNext, ActionPrev} {
		spec, ok := bindings[string(action)]
		if !ok {
			continue
		}
		c, err := compile(action, spec)
		if err != nil {
			errs = append(errs, &BindingError{Action: action, Combo: spec, Err: err})
			continue
		}
		next = append(next, c)
	}
	if c, err := compile(ActionNext, pasteCombo); err == nil {
		next = append(next, c)
	}

	d.mu.Lock()
	d.combos = next
	d.mu.Unlock()

	d.startHook()
	return errs
}

// ClearAll drops every registration. The hook stays installed; it simply has
// nothing left to match.
func (d *Dispatcher) ClearAll() {
	d.mu.Lock()
	d.combos = nil
	d.mu.Unlock()
}

// Close stops the hook and the forwarding goroutine.
func (d *Dispatcher) Close() {
	d.closed.Do(func() {
		close(d.done)
		d.mu.Lock()
		hooked := d.hooked
		d.mu.Unlock()
		if hooked {
			gohook.End()
		}
	})
}

func compile(action Action, spec string) (*combo, error) {
	names, err := ParseCombo(spec)
	if err != nil {
		return nil, err
	}
	c := &combo{action: action, spec: spec}
	for _, name := range names {
		codes, ok := rawcodes[name]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		c.keys = append(c.keys, keyState{name: name, rawcodes: codes})
	}
	return c, nil
}

// startHook installs the OS keyboard hook once. If the backend cannot start,
// the dispatcher flips to unavailable and global combos silently stop being
// a capability; local bindings are unaffected.
func (d *Dispatcher) startHook() {
	d.mu.Lock()
	if !d.available || d.hooked {
		d.mu.Unlock()
		return
	}
	d.hooked = true
	d.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in hotkey hook goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("global hotkey backend unavailable, local key bindings only")
			d.mu.Lock()
			d.available = false
			d.hooked = false
			d.mu.Unlock()
			return
		}
		for ev := range evChan {
			if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
				continue
			}
			d.handleKeyEvent(ev.Kind == gohook.KeyDown, ev.Rawcode)
		}
		log.Printf("hotkey event channel closed")
	}()
}

// handleKeyEvent updates the pressed state of every registered combo and
// posts the actions whose combos became fully pressed. Runs on the hook
// goroutine.
func (d *Dispatcher) handleKeyEvent(down bool, rawcode uint16) {
	var fired []Action

	d.mu.Lock()
	for _, c := range d.combos {
		matched := false
		for i := range c.keys {
			for _, code := range c.keys[i].rawcodes {
				if code == rawcode {
					c.keys[i].pressed = down
					matched = true
					break
				}
			}
		}
		if !down || !matched {
			continue
		}
		all := true
		for i := range c.keys {
			if !c.keys[i].pressed {
				all = false
				break
			}
		}
		if all {
			// Disarm only the key that completed the chord. Held modifiers
			// stay armed so the user can keep tapping the final key to cycle.
			for i := range c.keys {
				for _, code := range c.keys[i].rawcodes {
					if code == rawcode {
						c.keys[i].pressed = false
						break
					}
				}
			}
			fired = append(fired, c.action)
		}
	}
	d.mu.Unlock()

	for _, a := range fired {
		d.post(a)
	}
}

// post enqueues without blocking the hook goroutine; a full queue drops the
// action, matching how fast repeat presses should behave.
func (d *Dispatcher) post(a Action) {
	select {
	case d.actions <- a:
	default:
	}
}

func (d *Dispatcher) forward() {
	for {
		select {
		case <-d.done:
			return
		case a := <-d.actions:
			d.mu.Lock()
			fn := d.notify
			d.mu.Unlock()
			if fn != nil {
				fn(a)
			}
		}
	}
}
