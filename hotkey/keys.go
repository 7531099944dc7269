package hotkey

import (
	"fmt"
	"strings"
)

// rawcodes maps a normalized key name to the keyboard rawcodes that count as
// a press of that key. Modifiers match either of their left/right variants.
// Codes are Windows virtual-key numbers, which the gohook backends report on
// every platform we target.
var rawcodes = map[string][]uint16{
	"ctrl":  {162, 163},
	"alt":   {164, 165},
	"shift": {160, 161},
	"cmd":   {91, 92},

	"space":     {32},
	"enter":     {13},
	"esc":       {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"insert":    {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pagedown":  {34},

	"left":  {37},
	"up":    {38},
	"right": {39},
	"down":  {40},
}

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		rawcodes[string(c)] = []uint16{uint16(c) - 'a' + 65}
	}
	for c := byte('0'); c <= '9'; c++ {
		rawcodes[string(c)] = []uint16{uint16(c)}
	}
	for i := 1; i <= 24; i++ {
		rawcodes[fmt.Sprintf("f%d", i)] = []uint16{uint16(111 + i)}
	}
}

// normalizeKey folds the accepted aliases onto the canonical key names.
func normalizeKey(name string) string {
	switch name {
	case "win", "super":
		return "cmd"
	case "control":
		return "ctrl"
	case "return":
		return "enter"
	case "escape":
		return "esc"
	case "del":
		return "delete"
	case "ins":
		return "insert"
	case "pgup":
		return "pageup"
	case "pgdn":
		return "pagedown"
	}
	return name
}

// ParseCombo splits a combo string like "ctrl+shift+alt+right" into
// normalized key names. It does not check that the names are known keys;
// ValidateCombo does.
func ParseCombo(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty combo")
	}
	var keys []string
	for _, part := range strings.Split(strings.ToLower(spec), "+") {
		part = normalizeKey(strings.TrimSpace(part))
		if part == "" {
			return nil, fmt.Errorf("empty key in combo %q", spec)
		}
		keys = append(keys, part)
	}
	return keys, nil
}

// ValidateCombo reports whether every key in the combo maps to a rawcode the
// hook backend can match. Used by the settings form before committing.
func ValidateCombo(spec string) error {
	keys, err := ParseCombo(spec)
	if err != nil {
		return err
	}
	for _, name := range keys {
		if _, ok := rawcodes[name]; !ok {
			return fmt.Errorf("unknown key %q", name)
		}
	}
	return nil
}
