// FILE: lixenwraith/argbind/loader_test.go
package argbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFileFormat(t *testing.T) {
	tests := map[string]string{
		"app.toml":     "toml",
		"app.TML":      "toml",
		"app.json":     "json",
		"app.yaml":     "yaml",
		"dir/app.yml":  "yaml",
		"app.conf":     "",
		"no-extension": "",
	}
	for path, want := range tests {
		assert.Equal(t, want, detectFileFormat(path), path)
	}
}

func TestDetectFormatFromContent(t *testing.T) {
	assert.Equal(t, "json", detectFormatFromContent([]byte(`{"a": 1}`)))
	assert.Equal(t, "toml", detectFormatFromContent([]byte("a = 1\n[b]\nc = \"x\"\n")))
	assert.Equal(t, "yaml", detectFormatFromContent([]byte("a:\n  - 1\n  - 2\n")))
	assert.Equal(t, "", detectFormatFromContent([]byte("{not: [valid")))
}

func TestDecodeStructured(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		out, err := decodeStructured("x.toml", []byte("name = \"svc\"\n[limits]\ncpu = 2\n"))
		require.NoError(t, err)
		assert.Equal(t, "svc", out["name"])
		assert.Equal(t, map[string]any{"cpu": int64(2)}, out["limits"])
	})

	t.Run("YAMLList", func(t *testing.T) {
		out, err := decodeStructured("x.yml", []byte("tags: [a, b]\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, out["tags"])
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := decodeStructured("x.json", []byte("{"))
		assert.ErrorContains(t, err, "failed to parse JSON")

		_, err = decodeStructured("x.conf", []byte("{not: [valid"))
		assert.ErrorContains(t, err, "unable to determine format")
	})
}
