// File: lixenwraith/argbind/source.go
package argbind

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies where a bound value came from.
// Precedence is CLI, then environment, then defaults file, then the default tag.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// EnvTransformFunc maps an argument name to an environment variable name
type EnvTransformFunc func(name string) string

// defaultEnvTransform creates the default environment variable transformer: db.max-conns -> PREFIX_DB_MAX_CONNS
func defaultEnvTransform(prefix string) EnvTransformFunc {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return func(name string) string {
		env := strings.ToUpper(replacer.Replace(name))
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// valueLayer holds raw tokens for arguments the command line may leave out
type valueLayer struct {
	source Source
	origin string // file path or variable naming, for diagnostics
	values map[*Argument][]string
}

// envLayer collects one variable per argument. Variadic values are comma separated.
func (p *Parser) envLayer(env Environment, transform EnvTransformFunc) valueLayer {
	layer := valueLayer{source: SourceEnv, origin: transform("<name>"), values: make(map[*Argument][]string)}
	for _, a := range p.args {
		value, exists := env.Lookup(transform(a.Name))
		if !exists {
			continue
		}
		tokens := []string{value}
		if a.Multiplicity == Many {
			tokens = strings.Split(value, ",")
		}
		layer.values[a] = tokens
	}
	return layer
}

// fileLayer reads a TOML, JSON or YAML file whose dotted keys name arguments.
// Keys that match no argument are ignored.
func (p *Parser) fileLayer(fs FileSystem, path string) (valueLayer, error) {
	layer := valueLayer{source: SourceFile, origin: path, values: make(map[*Argument][]string)}

	data, err := fs.ReadAllBytes(path)
	if err != nil {
		return layer, fmt.Errorf("%w: %w", ErrDefaultsFile, err)
	}
	nested, err := decodeStructured(path, data)
	if err != nil {
		return layer, fmt.Errorf("%w: %w", ErrDefaultsFile, err)
	}

	for key, value := range flattenMap(nested, "") {
		a, ok := p.names[p.foldName(key)]
		if !ok {
			p.logger.Debug("ignoring defaults file key", "path", path, "key", key)
			continue
		}
		tokens, err := tokensOf(value)
		if err != nil {
			return layer, fmt.Errorf("%w: key %s in %s: %w", ErrDefaultsFile, key, path, err)
		}
		if tokens != nil {
			layer.values[a] = tokens
		}
	}
	return layer, nil
}

// flattenMap converts a nested map to a flat map with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			// Recursively flatten nested maps
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// tokensOf renders a decoded file value as raw tokens for the converter chain
func tokensOf(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case time.Time:
		return []string{v.Format(time.RFC3339)}, nil
	case []any:
		tokens := make([]string, 0, len(v))
		for _, elem := range v {
			switch elem.(type) {
			case []any, map[string]any:
				return nil, fmt.Errorf("nested collections are not supported")
			}
			t, err := tokensOf(elem)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, t...)
		}
		return tokens, nil
	case []map[string]any, map[string]any:
		return nil, fmt.Errorf("tables are not supported as argument values")
	default:
		return []string{fmt.Sprint(v)}, nil
	}
}
