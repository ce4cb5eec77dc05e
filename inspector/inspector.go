// Package inspector remaps characters between keyboard layouts.
//
// An Inspector is built once from an ordered set of layouts. For every
// character it finds the physical key that types it in the first layout that
// defines it, then reads what the same key types in every other layout.
// All methods are safe for concurrent use; the indices are read-only after New.
package inspector

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Alia5/keyswap/keymap"
)

var (
	ErrNoLayouts       = errors.New("no layouts configured")
	ErrMalformedLayout = errors.New("malformed layout")
	ErrDuplicateLayout = errors.New("duplicate layout name")
	ErrUnknownLayout   = keymap.ErrUnknownLayout
)

// Position is what one layout types at the inspected physical key.
type Position struct {
	Layout string `json:"layout"`
	Char   rune   `json:"char"`
	Found  bool   `json:"found"`
}

// Result describes an inspected character.
type Result struct {
	Char       rune                 `json:"char"`
	Layout     string               `json:"layout"`
	Definition keymap.KeyDefinition `json:"definition"`
	Positions  []Position           `json:"positions"`
}

// In returns the character the named layout types at the same position.
func (r Result) In(layout string) (rune, bool) {
	for _, p := range r.Positions {
		if p.Layout == layout {
			return p.Char, p.Found
		}
	}
	return 0, false
}

// Variant is the text as it would read under one layout.
type Variant struct {
	Layout string `json:"layout"`
	Text   string `json:"text"`
}

type table struct {
	name        string
	displayName string
	forward     keymap.Layout
	reverse     map[keymap.Position]rune
}

// Inspector converts text between a fixed, ordered set of layouts.
type Inspector struct {
	tables []table
	index  map[string]int
	hook   func(r rune, found bool)
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLookupHook registers fn to observe every character lookup. The hook is
// called from whatever goroutine performs the lookup.
func WithLookupHook(fn func(r rune, found bool)) Option {
	return func(i *Inspector) { i.hook = fn }
}

// New builds an Inspector. The order of layouts is the first-match order used
// when a character exists in more than one layout.
func New(layouts []keymap.Named, opts ...Option) (*Inspector, error) {
	if len(layouts) == 0 {
		return nil, ErrNoLayouts
	}
	ins := &Inspector{
		tables: make([]table, 0, len(layouts)),
		index:  make(map[string]int, len(layouts)),
	}
	for _, n := range layouts {
		if err := keymap.Validate(n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedLayout, err)
		}
		if _, dup := ins.index[n.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLayout, n.Name)
		}
		forward := keymap.Normalize(n.Layout)
		reverse := make(map[keymap.Position]rune, len(forward))
		for r, def := range forward {
			reverse[def.Position()] = r
		}
		display := n.DisplayName
		if display == "" {
			display = n.Name
		}
		ins.index[n.Name] = len(ins.tables)
		ins.tables = append(ins.tables, table{
			name:        n.Name,
			displayName: display,
			forward:     forward,
			reverse:     reverse,
		})
	}
	for _, opt := range opts {
		opt(ins)
	}
	return ins, nil
}

// Layouts returns the configured layout names in first-match order.
func (i *Inspector) Layouts() []string {
	out := make([]string, len(i.tables))
	for n, t := range i.tables {
		out[n] = t.name
	}
	return out
}

// Has reports whether layout is configured.
func (i *Inspector) Has(layout string) bool {
	_, ok := i.index[layout]
	return ok
}

// DisplayName returns the human-readable name of a configured layout, or the
// name itself when unknown.
func (i *Inspector) DisplayName(layout string) string {
	if n, ok := i.index[layout]; ok {
		return i.tables[n].displayName
	}
	return layout
}

// Size returns the number of characters the named layout defines.
func (i *Inspector) Size(layout string) int {
	if n, ok := i.index[layout]; ok {
		return len(i.tables[n].forward)
	}
	return 0
}

// Inspect finds r in the first layout that defines it and reports what every
// configured layout types at the same physical position.
func (i *Inspector) Inspect(r rune) (Result, bool) {
	for _, t := range i.tables {
		def, ok := t.forward[r]
		if !ok {
			continue
		}
		i.observe(r, true)
		return i.resolve(r, t.name, def), true
	}
	i.observe(r, false)
	return Result{}, false
}

func (i *Inspector) resolve(r rune, layout string, def keymap.KeyDefinition) Result {
	pos := def.Position()
	res := Result{
		Char:       r,
		Layout:     layout,
		Definition: def,
		Positions:  make([]Position, len(i.tables)),
	}
	for n, t := range i.tables {
		c, ok := t.reverse[pos]
		res.Positions[n] = Position{Layout: t.name, Char: c, Found: ok}
	}
	return res
}

func (i *Inspector) observe(r rune, found bool) {
	if i.hook != nil {
		i.hook(r, found)
	}
}

// InspectByCode inspects the character on the given physical key. Unshifted
// characters are preferred over shifted ones across all layouts.
func (i *Inspector) InspectByCode(code keymap.Code) (Result, bool) {
	return i.findBy(func(def keymap.KeyDefinition) bool { return def.Code == code })
}

// InspectByKeyCode is InspectByCode for legacy numeric key codes.
func (i *Inspector) InspectByKeyCode(keyCode int) (Result, bool) {
	if keyCode <= 0 {
		return Result{}, false
	}
	return i.findBy(func(def keymap.KeyDefinition) bool { return def.KeyCode == keyCode })
}

// InspectByHID is InspectByCode for USB HID usage ids.
func (i *Inspector) InspectByHID(usage uint8) (Result, bool) {
	code, ok := keymap.CodeForHID(usage)
	if !ok {
		return Result{}, false
	}
	return i.InspectByCode(code)
}

func (i *Inspector) findBy(match func(keymap.KeyDefinition) bool) (Result, bool) {
	for _, shift := range []bool{false, true} {
		for _, t := range i.tables {
			// map iteration is unordered; pick the lowest rune for stable results
			var best rune = -1
			for r, def := range t.forward {
				if def.ShiftKey == shift && match(def) && (best < 0 || r < best) {
					best = r
				}
			}
			if best >= 0 {
				return i.Inspect(best)
			}
		}
	}
	return Result{}, false
}

func passThrough(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// ConvertChar returns the character typed by the same physical key as r under
// target. Characters no layout knows come back unchanged. Uppercase letters
// the target cannot type directly are retyped from their lowercase position.
func (i *Inspector) ConvertChar(r rune, target string) (rune, error) {
	n, ok := i.index[target]
	if !ok {
		return r, fmt.Errorf("%w: %q", ErrUnknownLayout, target)
	}
	return i.convert(r, n), nil
}

func (i *Inspector) convert(r rune, target int) rune {
	if passThrough(r) {
		return r
	}
	if c, ok := i.lookup(r, target); ok {
		return c
	}
	// uppercase the target cannot type directly: retype from the lowercase position
	if unicode.IsUpper(r) {
		if lower := unicode.ToLower(r); lower != r {
			if c, ok := i.lookup(lower, target); ok {
				return unicode.ToUpper(c)
			}
		}
	}
	return r
}

func (i *Inspector) lookup(r rune, target int) (rune, bool) {
	res, ok := i.Inspect(r)
	if !ok {
		return 0, false
	}
	p := res.Positions[target]
	return p.Char, p.Found
}

// ConvertString converts every code point of text independently. The result
// always has the same number of code points as text.
func (i *Inspector) ConvertString(text, target string) (string, error) {
	n, ok := i.index[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, target)
	}
	return i.convertString(text, n), nil
}

func (i *Inspector) convertString(text string, target int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(i.convert(r, target))
	}
	return b.String()
}

// ConvertToAllLayouts converts text to every configured layout and keeps the
// results that actually change something.
func (i *Inspector) ConvertToAllLayouts(text string) []Variant {
	trimmed := strings.TrimSpace(text)
	var out []Variant
	for n, t := range i.tables {
		converted := i.convertString(text, n)
		if converted == text || converted == trimmed || strings.TrimSpace(converted) == "" {
			continue
		}
		out = append(out, Variant{Layout: t.name, Text: converted})
	}
	return out
}

// BestVariant picks the variant of text that differs from it in the most
// positions. Ties go to the earlier layout.
func (i *Inspector) BestVariant(text string) (Variant, bool) {
	return BestOf(text, i.ConvertToAllLayouts(text))
}

// BestOf is BestVariant over variants already produced by ConvertToAllLayouts.
func BestOf(text string, variants []Variant) (Variant, bool) {
	if len(variants) == 0 {
		return Variant{}, false
	}
	best, most := variants[0], -1
	for _, v := range variants {
		if d := differences(text, v.Text); d > most {
			best, most = v, d
		}
	}
	return best, true
}

func differences(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	d := 0
	for k := 0; k < n; k++ {
		if ra[k] != rb[k] {
			d++
		}
	}
	if len(ra) > len(rb) {
		return d + len(ra) - len(rb)
	}
	return d + len(rb) - len(ra)
}
