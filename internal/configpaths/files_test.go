package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG layout only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "keyswap"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	dir, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".config", "keyswap"), dir)

	p, err := DefaultNamedConfigPath("server", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "server.yaml"), p)
}

func TestConfigCandidatePaths(t *testing.T) {
	tests := []struct {
		user             string
		json, yaml, toml bool
	}{
		{user: "my.toml", toml: true},
		{user: "my.yml", yaml: true},
		{user: "my.json", json: true},
		{user: "my.conf", json: true},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.json, j[0] == tt.user)
			assert.Equal(t, tt.yaml, y[0] == tt.user)
			assert.Equal(t, tt.toml, tm[0] == tt.user)
		})
	}

	j, _, _ := ConfigCandidatePaths("")
	assert.Contains(t, j[0], "keyswap.json")
}
