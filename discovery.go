// FILE: lixenwraith/argbind/discovery.go
package argbind

import (
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic defaults file discovery
type FileDiscoveryOptions struct {
	// Base name of defaults file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config"). It is removed from the args BuildAndBind parses.
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// discoverFile locates the defaults file. An empty path means none was found.
func discoverFile(opts FileDiscoveryOptions, args []string, fs FileSystem, env Environment) string {
	// Check CLI args first (highest priority)
	if path, _ := cliFlagValue(args, opts.CLIFlag); path != "" {
		return env.ExpandEnvironmentVariables(path)
	}

	// Check environment variable
	if opts.EnvVar != "" {
		if path, ok := env.Lookup(opts.EnvVar); ok && path != "" {
			return path
		}
	}

	// Build search paths
	var searchPaths []string

	// Custom paths first
	searchPaths = append(searchPaths, opts.Paths...)

	// Current directory
	if opts.UseCurrentDir {
		if cwd, err := fs.MakePathFullyQualified("."); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	// XDG paths
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name, env)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(env.ExpandEnvironmentVariables(dir), opts.Name+ext)
			if fs.FileExists(path) {
				return path
			}
		}
	}

	// No file found is not an error - app can run with defaults/env
	return ""
}

// cliFlagValue finds "flag value" or "flag=value" before any "--" and returns the value
// together with args stripped of the flag.
func cliFlagValue(args []string, flag string) (string, []string) {
	if flag == "" {
		return "", args
	}
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == flag && i+1 < len(args) {
			rest := append(append([]string(nil), args[:i]...), args[i+2:]...)
			return args[i+1], rest
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			rest := append(append([]string(nil), args[:i]...), args[i+1:]...)
			return value, rest
		}
	}
	return "", args
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string, env Environment) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome, _ := env.Lookup("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, _ := env.Lookup("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs, _ := env.Lookup("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		// Default system paths
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
