// Package keymap holds the static keyboard layout tables: for every supported
// layout, which physical key (and shift state) types which character.
//
// Tables are plain data. They are never mutated after package init; Builtin and
// Resolve hand out copies so callers cannot corrupt the shared tables.
package keymap

import (
	"errors"
	"fmt"
)

// KeyDefinition describes one character within one layout.
type KeyDefinition struct {
	Key      rune `json:"key"`
	Code     Code `json:"code"`
	KeyCode  int  `json:"keyCode,omitempty"`
	ShiftKey bool `json:"shiftKey,omitempty"`
}

// Position returns the physical position this definition occupies.
func (d KeyDefinition) Position() Position {
	return Position{Code: d.Code, Shift: d.ShiftKey}
}

// Position is a physical key together with its shift state. Each position
// holds at most one character per layout.
type Position struct {
	Code  Code
	Shift bool
}

func (p Position) String() string {
	if p.Shift {
		return "Shift+" + string(p.Code)
	}
	return string(p.Code)
}

// Layout maps a character to the key that produces it.
type Layout map[rune]KeyDefinition

// Clone returns an independent copy of the layout.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for r, def := range l {
		out[r] = def
	}
	return out
}

// Named is a layout with its identifier, e.g. "en".
type Named struct {
	Name        string
	DisplayName string
	Layout      Layout
}

var (
	ErrUnknownLayout  = errors.New("unknown layout")
	ErrMissingCode    = errors.New("missing key code")
	ErrKeyMismatch    = errors.New("key does not match its table entry")
	ErrDuplicateKey   = errors.New("duplicate key position")
	ErrEmptyName      = errors.New("layout name is empty")
	ErrEmptyLayout    = errors.New("layout has no keys")
	ErrInvalidKeyCode = errors.New("negative key code")
)

// Validate checks the structural invariants of a named layout.
func Validate(n Named) error {
	if n.Name == "" {
		return ErrEmptyName
	}
	if len(n.Layout) == 0 {
		return fmt.Errorf("layout %q: %w", n.Name, ErrEmptyLayout)
	}
	seen := make(map[Position]rune, len(n.Layout))
	for r, def := range n.Layout {
		if def.Code == "" {
			return fmt.Errorf("layout %q, key %q: %w", n.Name, r, ErrMissingCode)
		}
		if def.Key != 0 && def.Key != r {
			return fmt.Errorf("layout %q, key %q defined as %q: %w", n.Name, r, def.Key, ErrKeyMismatch)
		}
		if def.KeyCode < 0 {
			return fmt.Errorf("layout %q, key %q: %w", n.Name, r, ErrInvalidKeyCode)
		}
		pos := def.Position()
		if other, ok := seen[pos]; ok {
			return fmt.Errorf("layout %q: %q and %q both on %s: %w", n.Name, other, r, pos, ErrDuplicateKey)
		}
		seen[pos] = r
	}
	return nil
}

// Normalize fills in fields a table may leave implicit: the Key from the map
// key and the legacy key code from the physical key catalogue.
func Normalize(l Layout) Layout {
	out := make(Layout, len(l))
	for r, def := range l {
		if def.Key == 0 {
			def.Key = r
		}
		if def.KeyCode == 0 {
			if kc, ok := LegacyKeyCode(def.Code); ok {
				def.KeyCode = kc
			}
		}
		out[r] = def
	}
	return out
}

type builtin struct {
	displayName string
	layout      Layout
}

var builtins = map[string]builtin{
	"en": {"English", english},
	"ru": {"Русский", russian},
	"he": {"עברית", hebrew},
	"de": {"Deutsch", german},
	"fr": {"Français", french},
	"es": {"Español", spanish},
	"ua": {"Українська", ukrainian},
}

var builtinOrder = []string{"en", "ru", "he", "de", "fr", "es", "ua"}

// DefaultNames are the layouts enabled when nothing else is configured.
var DefaultNames = []string{"en", "ru", "he"}

// BuiltinNames returns the names of all compiled-in layouts in canonical order.
func BuiltinNames() []string {
	return append([]string(nil), builtinOrder...)
}

// Builtin returns a copy of the compiled-in layout with the given name.
func Builtin(name string) (Named, bool) {
	b, ok := builtins[name]
	if !ok {
		return Named{}, false
	}
	return Named{Name: name, DisplayName: b.displayName, Layout: b.layout.Clone()}, true
}

// Resolve returns the named built-in layouts in the order requested.
func Resolve(names ...string) ([]Named, error) {
	out := make([]Named, 0, len(names))
	for _, name := range names {
		n, ok := Builtin(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
		}
		out = append(out, n)
	}
	return out, nil
}

// Defaults returns the default layout set (en, ru, he).
func Defaults() []Named {
	out, err := Resolve(DefaultNames...)
	if err != nil {
		panic(err)
	}
	return out
}
