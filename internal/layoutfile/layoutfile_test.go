package layoutfile_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/layoutfile"
	"github.com/Alia5/keyswap/keymap"
)

const plJSON = `{
  "name": "pl",
  "displayName": "Polski",
  "keys": {"q": "KeyQ", "Q": "Shift+KeyQ", "ą": {"code": "KeyA", "keyCode": 65}}
}`

const plYAML = `
name: pl
displayName: Polski
keys:
  q: KeyQ
  Q: Shift+KeyQ
  ą:
    code: keya
  1: Digit1
`

const plTOML = `
name = "pl"
displayName = "Polski"

[keys]
"q" = "KeyQ"
"Q" = "Shift+KeyQ"
"ą" = { code = "KeyA", shiftKey = false }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		format string
		data   string
		size   int
	}{
		{format: "json", data: plJSON, size: 3},
		{format: "yaml", data: plYAML, size: 4},
		{format: "toml", data: plTOML, size: 3},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			n, err := layoutfile.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, "pl", n.Name)
			assert.Equal(t, "Polski", n.DisplayName)
			assert.Len(t, n.Layout, tt.size)
			assert.Equal(t, keymap.KeyDefinition{Key: 'Q', Code: keymap.KeyQ, ShiftKey: true}, n.Layout['Q'])
			assert.Equal(t, keymap.KeyA, n.Layout['ą'].Code)
			assert.False(t, n.Layout['ą'].ShiftKey)
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{name: "not json", data: `{`, err: layoutfile.ErrInvalidLayout},
		{name: "missing name", data: `{"keys":{"q":"KeyQ"}}`, err: layoutfile.ErrInvalidLayout},
		{name: "uppercase name", data: `{"name":"PL","keys":{"q":"KeyQ"}}`, err: layoutfile.ErrInvalidLayout},
		{name: "no keys", data: `{"name":"pl","keys":{}}`, err: layoutfile.ErrInvalidLayout},
		{name: "multi char key", data: `{"name":"pl","keys":{"qq":"KeyQ"}}`, err: layoutfile.ErrInvalidLayout},
		{name: "malformed position", data: `{"name":"pl","keys":{"q":"Ctrl+KeyQ"}}`, err: layoutfile.ErrInvalidLayout},
		{name: "unknown field", data: `{"name":"pl","keys":{"q":"KeyQ"},"extra":1}`, err: layoutfile.ErrInvalidLayout},
		{name: "unknown code", data: `{"name":"pl","keys":{"q":"KeyZZ"}}`, err: layoutfile.ErrUnknownCode},
		{name: "shared position", data: `{"name":"pl","keys":{"q":"KeyQ","w":"KeyQ"}}`, err: keymap.ErrDuplicateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layoutfile.Parse([]byte(tt.data), "json")
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := layoutfile.Parse([]byte(plJSON), "ini")
	assert.ErrorIs(t, err, layoutfile.ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	n, err := layoutfile.Load(writeFile(t, dir, "pl.yml", plYAML))
	require.NoError(t, err)
	assert.Equal(t, "pl", n.Name)

	_, err = layoutfile.Load(writeFile(t, dir, "pl.txt", plJSON))
	assert.ErrorIs(t, err, layoutfile.ErrUnsupportedFormat)

	_, err = layoutfile.Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	pl := writeFile(t, dir, "pl.json", plJSON)
	ru := writeFile(t, dir, "ru.json", `{"name":"ru","keys":{"й":"KeyQ"}}`)

	t.Run("files append after names", func(t *testing.T) {
		got, err := layoutfile.Resolve([]string{"en", "ru"}, []string{pl})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"en", "ru", "pl"}, []string{got[0].Name, got[1].Name, got[2].Name})
	})

	t.Run("file replaces builtin of the same name", func(t *testing.T) {
		got, err := layoutfile.Resolve([]string{"en", "ru"}, []string{ru})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Len(t, got[1].Layout, 1)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := layoutfile.Resolve([]string{"en", "xx"}, nil)
		assert.ErrorIs(t, err, keymap.ErrUnknownLayout)
	})

	t.Run("same layout twice", func(t *testing.T) {
		_, err := layoutfile.Resolve([]string{"en"}, []string{pl, writeFile(t, dir, "pl2.toml", plTOML)})
		assert.Error(t, err)
	})
}

func TestResolvedLayoutConverts(t *testing.T) {
	layouts, err := layoutfile.Resolve([]string{"en", "ru"}, []string{writeFile(t, t.TempDir(), "pl.json", plJSON)})
	require.NoError(t, err)
	insp, err := inspector.New(layouts)
	require.NoError(t, err)

	got, err := insp.ConvertString("qa", "pl")
	require.NoError(t, err)
	assert.Equal(t, "qą", got)
	got, err = insp.ConvertString("ą", "ru")
	require.NoError(t, err)
	assert.Equal(t, "ф", got)
}

func TestReloaderWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.json", `{"name":"custom","keys":{"x":"KeyQ"}}`)

	r, err := layoutfile.NewReloader([]string{"en"}, []string{path}, slog.Default())
	require.NoError(t, err)
	reloaded := make(chan error, 8)
	r.OnReload(func(err error) { reloaded <- err })
	require.NoError(t, r.Watch())
	defer r.Close()

	got, err := r.Inspector().ConvertString("q", "custom")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	wait := func() error {
		select {
		case err := <-reloaded:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("no reload after file change")
			return nil
		}
	}

	writeFile(t, dir, "custom.json", `{"name":"custom","keys":{"y":"KeyQ"}}`)
	require.NoError(t, wait())
	got, err = r.Inspector().ConvertString("q", "custom")
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	// a broken file keeps the last good inspector
	before := r.Inspector()
	writeFile(t, dir, "custom.json", `{"name":`)
	assert.Error(t, wait())
	assert.Same(t, before, r.Inspector())

	writeFile(t, dir, "unrelated.json", `{}`)
	select {
	case err := <-reloaded:
		t.Fatalf("unexpected reload: %v", err)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestReloaderWithoutFiles(t *testing.T) {
	r, err := layoutfile.NewReloader(keymap.DefaultNames, nil, slog.Default())
	require.NoError(t, err)
	require.NoError(t, r.Watch())
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"en", "ru", "he"}, r.Inspector().Layouts())

	_, err = layoutfile.NewReloader([]string{"zz"}, nil, slog.Default())
	assert.ErrorIs(t, err, keymap.ErrUnknownLayout)
}
