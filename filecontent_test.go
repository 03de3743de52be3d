// FILE: lixenwraith/argbind/filecontent_test.go
package argbind

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type hostname string

func newFileContentConverter(fs FileSystem) *fileContentConverter {
	return &fileContentConverter{fs: fs, env: MapEnvironment(map[string]string{"DIR": "/in"}), lines: newDescriptorConverter()}
}

func TestFileContentConverter(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/in/hello.txt":     "hello",
		"/in/three.txt":     "alpha\nbeta\r\ngamma\n",
		"/in/blob.bin":      "\x00\x01\xff",
		"/in/numbers.txt":   "1\n\n  2  \n",
		"/in/bad.txt":       "1\nx\n",
		"/in/long.txt":      "abcdefghijklmnopqrstuvwxyz\n",
		"/in/doc.yaml":      "name: demo\nitems:\n  - a\n  - b\n",
		"/in/settings.toml": "[server]\nport = 8080\n",
		"/in/settings.json": `{"server": {"port": 8080}}`,
		"/in/settings.conf": "server:\n  port: 8080\n",
		"/in/empty.yaml":    "",
	})
	c := newFileContentConverter(fs)

	t.Run("DeclinesWithoutFlag", func(t *testing.T) {
		res, err := c.TryConvert("/in/hello.txt", TargetOf[string](), ExistingDirectory)
		require.NoError(t, err)
		assert.False(t, res.Ok())
	})

	t.Run("ScalarStringIsWholeFile", func(t *testing.T) {
		res, err := c.TryConvert("/in/hello.txt", TargetOf[string](), ReadFileContent)
		assert.Equal(t, []any{"hello"}, interfacesOf(t, res, err))
	})

	t.Run("StringVectorIsLines", func(t *testing.T) {
		res, err := c.TryConvert("$DIR/three.txt", TargetOf[[]string](), ReadFileContent)
		assert.Equal(t, []any{"alpha", "beta", "gamma"}, interfacesOf(t, res, err))

		res, err = c.TryConvert("/in/three.txt", TargetOf[[]hostname](), ReadFileContent)
		assert.Equal(t, []any{hostname("alpha"), hostname("beta"), hostname("gamma")}, interfacesOf(t, res, err))
	})

	t.Run("ByteVectorIsRawBytes", func(t *testing.T) {
		res, err := c.TryConvert("/in/blob.bin", TargetOf[[]byte](), ReadFileContent)
		assert.Equal(t, []any{byte(0), byte(1), byte(0xff)}, interfacesOf(t, res, err))
	})

	t.Run("CustomTypePerLine", func(t *testing.T) {
		res, err := c.TryConvert("/in/numbers.txt", TargetOf[[]int](), ReadFileContent)
		assert.Equal(t, []any{1, 2}, interfacesOf(t, res, err))

		res, err = c.TryConvert("/in/numbers.txt", TargetOf[int](), ReadFileContent)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Len())
	})

	t.Run("CustomLineDeclineIsFatal", func(t *testing.T) {
		_, err := c.TryConvert("/in/bad.txt", TargetOf[[]int](), ReadFileContent)
		require.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), `"x"`)

		_, err = c.TryConvert("/in/long.txt", TargetOf[[]float64](), ReadFileContent)
		require.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), `"abcdefghij..."`)
		assert.NotContains(t, err.Error(), "abcdefghijk")
	})

	t.Run("DocumentTree", func(t *testing.T) {
		res, err := c.TryConvert("/in/doc.yaml", TargetOf[yaml.Node](), ReadFileContent)
		got := interfacesOf(t, res, err)
		require.Len(t, got, 1)
		doc := got[0].(yaml.Node)
		assert.Equal(t, yaml.DocumentNode, doc.Kind)
		require.Len(t, doc.Content, 1)
		assert.Equal(t, yaml.MappingNode, doc.Content[0].Kind)
	})

	t.Run("DocumentRootElement", func(t *testing.T) {
		res, err := c.TryConvert("/in/doc.yaml", TargetOf[*yaml.Node](), ReadFileContent)
		got := interfacesOf(t, res, err)
		require.Len(t, got, 1)
		root := got[0].(*yaml.Node)
		assert.Equal(t, yaml.MappingNode, root.Kind)

		var decoded struct {
			Name  string   `yaml:"name"`
			Items []string `yaml:"items"`
		}
		require.NoError(t, root.Decode(&decoded))
		assert.Equal(t, "demo", decoded.Name)
		assert.Equal(t, []string{"a", "b"}, decoded.Items)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		res, err := c.TryConvert("/in/empty.yaml", TargetOf[yaml.Node](), ReadFileContent)
		got := interfacesOf(t, res, err)
		assert.Equal(t, yaml.DocumentNode, got[0].(yaml.Node).Kind)

		_, err = c.TryConvert("/in/empty.yaml", TargetOf[*yaml.Node](), ReadFileContent)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("StructuredMaps", func(t *testing.T) {
		res, err := c.TryConvert("/in/settings.toml", TargetOf[map[string]any](), ReadFileContent)
		got := interfacesOf(t, res, err)[0].(map[string]any)
		assert.Equal(t, int64(8080), got["server"].(map[string]any)["port"])

		res, err = c.TryConvert("/in/settings.json", TargetOf[map[string]any](), ReadFileContent)
		got = interfacesOf(t, res, err)[0].(map[string]any)
		assert.Equal(t, json.Number("8080"), got["server"].(map[string]any)["port"])

		// No known extension, sniffed as YAML
		res, err = c.TryConvert("/in/settings.conf", TargetOf[map[string]any](), ReadFileContent)
		got = interfacesOf(t, res, err)[0].(map[string]any)
		assert.Equal(t, 8080, got["server"].(map[string]any)["port"])
	})

	t.Run("ReadFailureIsFatal", func(t *testing.T) {
		targets := []TargetType{
			TargetOf[string](), TargetOf[[]string](), TargetOf[[]byte](), TargetOf[[]int](),
			TargetOf[yaml.Node](), TargetOf[map[string]any](),
		}
		for _, target := range targets {
			res, err := c.TryConvert("/in/missing.txt", target, ReadFileContent)
			require.ErrorIs(t, err, ErrParse, target.String())
			assert.False(t, res.Ok())
		}
	})
}
