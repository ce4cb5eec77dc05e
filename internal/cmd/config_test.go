package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestConfigKey(t *testing.T) {
	typ := reflect.TypeOf(struct {
		Addr                 string
		RequireLocalhostAuth bool
		MaxPayloadBytes      int
		LayoutFiles          []string `name:"layout-file"`
		APIKey               string
	}{})
	want := []string{"addr", "require_localhost_auth", "max_payload_bytes", "layout_file", "api_key"}
	for i, w := range want {
		assert.Equal(t, w, configKey(typ.Field(i)))
	}
}

func TestTemplate(t *testing.T) {
	server, err := Template("server")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ru", "he"}, server["layouts"])
	assert.Equal(t, []string{}, server["layout_file"])
	assert.Equal(t, "30s", server["connection_timeout"])
	assert.Equal(t, true, server["watch"])
	api, ok := server["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, ":3243", api["addr"])
	assert.Equal(t, false, api["require_localhost_auth"])
	assert.NotContains(t, api, "password")

	query, err := Template("query")
	require.NoError(t, err)
	assert.Equal(t, true, query["normalize"])
	assert.Contains(t, query, "remote")

	_, err = Template("proxy")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "sub", "server."+format)
			c := ConfigInit{Command: "server", Format: format, Output: dest}
			require.NoError(t, c.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			var doc map[string]any
			switch format {
			case "json":
				require.NoError(t, json.Unmarshal(data, &doc))
			case "yaml":
				require.NoError(t, yaml.Unmarshal(data, &doc))
			case "toml":
				tree, err := toml.LoadBytes(data)
				require.NoError(t, err)
				doc = tree.ToMap()
			}
			assert.Contains(t, doc, "api")
			assert.Contains(t, doc, "layouts")

			assert.Error(t, c.Run(), "existing file without --force")
			c.Force = true
			assert.NoError(t, c.Run())
		})
	}
}
