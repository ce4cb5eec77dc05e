package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/internal/log"
	"github.com/Alia5/keyswap/internal/server/api"
	"github.com/Alia5/keyswap/keymap"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func defaultQuery() Query {
	return Query{LayoutSet: LayoutSet{Layouts: keymap.DefaultNames}, Normalize: true}
}

func pipe(in string) (*IO, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &IO{In: strings.NewReader(in), Out: out}, out
}

func TestQueryInput(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		stdin     string
		terminal  bool
		normalize bool
		want      string
		wantPiped bool
		wantErr   error
	}{
		{name: "joined args", args: []string{"ghbdtn", "vbh"}, want: "ghbdtn vbh"},
		{name: "stdin", stdin: "ghbdtn\n", want: "ghbdtn\n", wantPiped: true},
		{name: "terminal without args", terminal: true, wantErr: errNoInput},
		{name: "nfc composes", args: []string{"\u0438\u0306"}, normalize: true, want: "\u0439"},
		{name: "no normalization", args: []string{"\u0438\u0306"}, want: "\u0438\u0306"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{Normalize: tt.normalize}
			stdio, _ := pipe(tt.stdin)
			stdio.Terminal = tt.terminal
			got, piped, err := q.input(tt.args, stdio)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPiped, piped)
		})
	}
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "args", layout: "ru", args: []string{"ghbdtn"}, want: "привет\n"},
		{name: "layout case", layout: "RU", args: []string{"ghbdtn"}, want: "привет\n"},
		{name: "back to en", layout: "en", args: []string{"привет"}, want: "ghbdtn\n"},
		{name: "stdin keeps newlines", layout: "ru", stdin: "ghbdtn\nvbh\n", want: "привет\nмир\n"},
		{name: "decomposed input", layout: "en", args: []string{"\u0438\u0306"}, want: "q\n"},
		{name: "unknown layout", layout: "zz", args: []string{"q"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Convert{Query: defaultQuery(), Layout: tt.layout, Text: tt.args}
			stdio, out := pipe(tt.stdin)
			err := c.Run(discard(), stdio)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestVariantsCommand(t *testing.T) {
	t.Run("best", func(t *testing.T) {
		c := Variants{Query: defaultQuery(), Text: []string{"ghbdtn"}, Best: true}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		assert.Equal(t, "привет\n", out.String())
	})

	t.Run("no best", func(t *testing.T) {
		c := Variants{Query: defaultQuery(), Text: []string{"123"}, Best: true}
		stdio, _ := pipe("")
		assert.Error(t, c.Run(discard(), stdio))
	})

	t.Run("table marks best", func(t *testing.T) {
		c := Variants{Query: defaultQuery(), Text: []string{"ghbdtn"}}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "LAYOUT")
		assert.True(t, strings.HasPrefix(lines[1], "*"), lines[1])
		assert.Contains(t, lines[1], "привет")
		assert.Contains(t, lines[2], "he")
	})

	t.Run("json", func(t *testing.T) {
		c := Variants{Query: defaultQuery(), Text: []string{"ghbdtn"}, JSON: true}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		var res apitypes.VariantsResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.Len(t, res.Variants, 2)
		require.NotNil(t, res.Best)
		assert.Equal(t, "ru", res.Best.Layout)
	})
}

func TestInspectCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), Chars: []string{"qй"}}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, []string{"CHAR", "LAYOUT", "KEY", "EN", "RU", "HE"}, strings.Fields(lines[0]))
		assert.Equal(t, []string{"q", "en", "KeyQ", "q", "й", "/"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"й", "ru", "KeyQ", "q", "й", "/"}, strings.Fields(lines[2]))
	})

	t.Run("shifted key", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), Chars: []string{"!"}}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		assert.Contains(t, out.String(), "Shift+Digit1")
	})

	t.Run("by code", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), Code: "keyq", JSON: true}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		var res apitypes.InspectResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.Equal(t, "KeyQ", res.KeyDefinition.Code)
		assert.Equal(t, "q", res.Char)
	})

	t.Run("by key code", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), KeyCode: 81, JSON: true}
		stdio, out := pipe("")
		require.NoError(t, c.Run(discard(), stdio))
		assert.Contains(t, out.String(), `"code":"KeyQ"`)
	})

	t.Run("unknown characters only", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), Chars: []string{"€"}}
		stdio, out := pipe("")
		assert.ErrorIs(t, c.Run(discard(), stdio), errNotFound)
		assert.Empty(t, out.String())
	})

	t.Run("unknown code", func(t *testing.T) {
		c := Inspect{Query: defaultQuery(), Code: "KeyNope"}
		stdio, _ := pipe("")
		assert.Error(t, c.Run(discard(), stdio))
	})
}

func TestAnalyzeCommand(t *testing.T) {
	c := Analyze{Query: defaultQuery(), Text: []string{"q €"}, Limit: 10}
	stdio, out := pipe("")
	require.NoError(t, c.Run(discard(), stdio))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "2 of 3 characters convertible", lines[0])
	assert.Contains(t, out.String(), "KeyQ")

	c = Analyze{Query: defaultQuery(), Text: []string{"ghbdtn"}, Limit: 2}
	stdio, out = pipe("")
	require.NoError(t, c.Run(discard(), stdio))
	assert.Contains(t, out.String(), "... 4 more")
}

func TestLayoutsCommand(t *testing.T) {
	c := Layouts{Query: defaultQuery()}
	stdio, out := pipe("")
	require.NoError(t, c.Run(discard(), stdio))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "en", strings.Fields(lines[1])[0])

	c = Layouts{Query: defaultQuery(), Builtins: true, JSON: true}
	stdio, out = pipe("")
	require.NoError(t, c.Run(discard(), stdio))
	var res apitypes.LayoutsResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(t, res.Layouts, len(keymap.BuiltinNames()))
}

func startServer(t *testing.T, s *Server) (addr string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	s.listening = func(a string) { addrCh <- a }
	errCh := make(chan error, 1)
	go func() { errCh <- s.StartServer(ctx, discard(), log.NewWire(nil)) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-errCh)
	})
	select {
	case addr = <-addrCh:
		return addr
	case err := <-errCh:
		t.Fatalf("server exited: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	return ""
}

func TestServerWithRemoteQueries(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "nested", "key.txt")
	addr := startServer(t, &Server{
		LayoutSet: LayoutSet{Layouts: keymap.DefaultNames},
		ApiServerConfig: api.ServerConfig{
			Addr:                 "127.0.0.1:0",
			RequireLocalhostAuth: true,
			MaxPayloadBytes:      1 << 16,
		},
		ConnectionTimeout: 5 * time.Second,
		KeyFile:           keyFile,
	})

	pwd, err := os.ReadFile(keyFile)
	require.NoError(t, err)
	require.Len(t, strings.TrimSpace(string(pwd)), 16)

	remote := Query{Remote: addr, Password: string(pwd), Normalize: true}

	c := Convert{Query: remote, Layout: "ru", Text: []string{"ghbdtn"}}
	stdio, out := pipe("")
	require.NoError(t, c.Run(discard(), stdio))
	assert.Equal(t, "привет\n", out.String())

	i := Inspect{Query: remote, Chars: []string{"q€"}}
	stdio, out = pipe("")
	require.NoError(t, i.Run(discard(), stdio))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 2)

	wrong := Convert{Query: Query{Remote: addr, Password: "nope"}, Layout: "ru", Text: []string{"q"}}
	stdio, _ = pipe("")
	assert.Error(t, wrong.Run(discard(), stdio))
}

func TestServerPassword(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "key.txt")
	s := &Server{KeyFile: keyFile}

	first, err := s.password(discard())
	require.NoError(t, err)
	second, err := s.password(discard())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(keyFile, []byte("  secret\n"), 0o600))
	got, err := s.password(discard())
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	require.NoError(t, os.WriteFile(keyFile, []byte("\n"), 0o600))
	_, err = s.password(discard())
	assert.Error(t, err)
}

func TestServerRequiresAddr(t *testing.T) {
	s := &Server{NoAuth: true, LayoutSet: LayoutSet{Layouts: keymap.DefaultNames}}
	assert.Error(t, s.StartServer(context.Background(), discard(), log.NewWire(nil)))
}
