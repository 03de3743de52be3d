// FILE: lixenwraith/argbind/filesystem.go
package argbind

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem is the filesystem surface the converters need.
// Implementations must be safe for concurrent reads if a registry is shared.
type FileSystem interface {
	DirectoryExists(path string) bool
	FileExists(path string) bool
	FileSystemEntries(path string) ([]FileSystemEntry, error)
	ReadAllText(path string) (string, error)
	ReadAllLines(path string) ([]string, error)
	ReadAllBytes(path string) ([]byte, error)
	MakePathFullyQualified(path string) (string, error)
}

// FileSystemEntry is a handle to a file or directory.
type FileSystemEntry interface {
	Path() string
	Name() string
	IsDir() bool
}

// DirectoryEntry is a handle to a directory
type DirectoryEntry struct{ path string }

// FileEntry is a handle to a regular file
type FileEntry struct{ path string }

func NewDirectoryEntry(path string) DirectoryEntry { return DirectoryEntry{path: path} }
func NewFileEntry(path string) FileEntry           { return FileEntry{path: path} }

func (d DirectoryEntry) Path() string   { return d.path }
func (d DirectoryEntry) Name() string   { return filepath.Base(d.path) }
func (d DirectoryEntry) IsDir() bool    { return true }
func (d DirectoryEntry) String() string { return d.path }

func (f FileEntry) Path() string   { return f.path }
func (f FileEntry) Name() string   { return filepath.Base(f.path) }
func (f FileEntry) IsDir() bool    { return false }
func (f FileEntry) String() string { return f.path }

// aferoFileSystem adapts an afero.Fs
type aferoFileSystem struct {
	fs  afero.Afero
	cwd string // base for relative paths, empty means the process working directory
}

// NewFileSystem wraps an afero filesystem. Relative paths resolve against the process working directory.
func NewFileSystem(fs afero.Fs) FileSystem {
	return &aferoFileSystem{fs: afero.Afero{Fs: fs}}
}

// NewFileSystemAt wraps an afero filesystem with an explicit working directory,
// which in-memory filesystems need for relative paths.
func NewFileSystemAt(fs afero.Fs, cwd string) FileSystem {
	return &aferoFileSystem{fs: afero.Afero{Fs: fs}, cwd: filepath.Clean(cwd)}
}

// OSFileSystem returns the real filesystem.
func OSFileSystem() FileSystem {
	return NewFileSystem(afero.NewOsFs())
}

func (a *aferoFileSystem) DirectoryExists(path string) bool {
	ok, err := a.fs.DirExists(path)
	return err == nil && ok
}

func (a *aferoFileSystem) FileExists(path string) bool {
	info, err := a.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (a *aferoFileSystem) FileSystemEntries(path string) ([]FileSystemEntry, error) {
	infos, err := a.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory '%s': %w", path, err)
	}
	entries := make([]FileSystemEntry, 0, len(infos))
	for _, info := range infos {
		full := filepath.Join(path, info.Name())
		if info.IsDir() {
			entries = append(entries, NewDirectoryEntry(full))
		} else {
			entries = append(entries, NewFileEntry(full))
		}
	}
	return entries, nil
}

func (a *aferoFileSystem) ReadAllText(path string) (string, error) {
	data, err := a.ReadAllBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *aferoFileSystem) ReadAllLines(path string) ([]string, error) {
	data, err := a.ReadAllBytes(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to split lines of '%s': %w", path, err)
	}
	return lines, nil
}

func (a *aferoFileSystem) ReadAllBytes(path string) ([]byte, error) {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return data, nil
}

func (a *aferoFileSystem) MakePathFullyQualified(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if a.cwd != "" {
		return filepath.Join(a.cwd, path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}
	return abs, nil
}
