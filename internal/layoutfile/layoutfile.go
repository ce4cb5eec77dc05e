// Package layoutfile loads user supplied keyboard layouts from JSON, YAML or
// TOML files and keeps a hot-reloaded inspector built from them.
//
// A layout file maps each character to the physical key that types it:
//
//	{
//	  "name": "pl",
//	  "displayName": "Polski",
//	  "keys": {"q": "KeyQ", "Q": "Shift+KeyQ", "ą": {"code": "KeyA", "keyCode": 65}}
//	}
package layoutfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/keyswap/keymap"
)

const schemaURL = "https://github.com/Alia5/keyswap/layout.schema.json"

//go:embed layout.schema.json
var schemaJSON []byte

var (
	ErrUnsupportedFormat = errors.New("unsupported layout file format")
	ErrInvalidLayout     = errors.New("invalid layout file")
	ErrUnknownCode       = errors.New("unknown key code")
)

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Schema returns the JSON schema layout files are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// FormatFromPath derives the file format from its extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the layout file at path.
func Load(path string) (keymap.Named, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return keymap.Named{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return keymap.Named{}, err
	}
	n, err := Parse(data, format)
	if err != nil {
		return keymap.Named{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Parse decodes a layout document in the given format ("json", "yaml" or
// "toml"), validates it against the schema and converts it to a layout.
func Parse(data []byte, format string) (keymap.Named, error) {
	doc, err := decode(data, format)
	if err != nil {
		return keymap.Named{}, err
	}
	// the validator expects encoding/json shaped values
	instance, err := normalizeJSON(doc)
	if err != nil {
		return keymap.Named{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	schema, err := compileSchema()
	if err != nil {
		return keymap.Named{}, fmt.Errorf("compile layout schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return keymap.Named{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	var f file
	raw, _ := json.Marshal(instance)
	if err := json.Unmarshal(raw, &f); err != nil {
		return keymap.Named{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	n, err := f.named()
	if err != nil {
		return keymap.Named{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if err := keymap.Validate(n); err != nil {
		return keymap.Named{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return n, nil
}

func decode(data []byte, format string) (any, error) {
	var doc any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		doc = stringKeys(doc)
	case "toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		doc = tree.ToMap()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc, nil
}

// stringKeys turns YAML mappings with non-string keys (digits, booleans) into
// string keyed maps so they survive JSON encoding.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = stringKeys(t[i])
		}
		return t
	default:
		return v
	}
}

func normalizeJSON(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(raw, &out)
	return out, err
}

type file struct {
	Name        string                     `json:"name"`
	DisplayName string                     `json:"displayName"`
	Keys        map[string]json.RawMessage `json:"keys"`
}

type keyEntry struct {
	Code     string `json:"code"`
	KeyCode  int    `json:"keyCode"`
	ShiftKey bool   `json:"shiftKey"`
}

func (f file) named() (keymap.Named, error) {
	layout := make(keymap.Layout, len(f.Keys))
	for k, raw := range f.Keys {
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) || r == utf8.RuneError {
			return keymap.Named{}, fmt.Errorf("key %q must be a single character", k)
		}
		var entry keyEntry
		var short string
		if err := json.Unmarshal(raw, &short); err == nil {
			entry.Code, entry.ShiftKey = strings.CutPrefix(short, "Shift+")
		} else if err := json.Unmarshal(raw, &entry); err != nil {
			return keymap.Named{}, fmt.Errorf("key %q: %w", k, err)
		}
		code, ok := keymap.ParseCode(entry.Code)
		if !ok {
			return keymap.Named{}, fmt.Errorf("key %q: %w %q", k, ErrUnknownCode, entry.Code)
		}
		layout[r] = keymap.KeyDefinition{Key: r, Code: code, KeyCode: entry.KeyCode, ShiftKey: entry.ShiftKey}
	}
	display := f.DisplayName
	if display == "" {
		display = f.Name
	}
	return keymap.Named{Name: f.Name, DisplayName: display, Layout: layout}, nil
}
