package argbind

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// memFS builds an in-memory filesystem rooted at /work with the given files and directories
func memFS(t *testing.T, files map[string]string, dirs ...string) FileSystem {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0755))
	}
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return NewFileSystemAt(fs, "/work")
}

// interfacesOf converts a result for comparison, failing on a decline
func interfacesOf(t *testing.T, res Result, err error) []any {
	t.Helper()
	require.NoError(t, err)
	require.True(t, res.Ok(), "converter declined")
	return res.Interfaces()
}
