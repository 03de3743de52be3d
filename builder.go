// File: lixenwraith/argbind/builder.go
package argbind

import (
	"fmt"
	"log/slog"
	"os"
)

// ValidatorFunc checks the bound target after a successful parse.
// It receives the same pointer that was passed to BuildAndBind.
type ValidatorFunc func(target any) error

// Builder provides a fluent interface for building parsers
type Builder struct {
	registry   *Registry
	fs         FileSystem
	env        Environment
	kinds      []ConverterKind
	opts       ParserOptions
	args       []string
	err        error
	validators []ValidatorFunc

	envTransform EnvTransformFunc
	file         string
	discovery    *FileDiscoveryOptions
}

// NewBuilder creates a new parser builder
func NewBuilder() *Builder {
	return &Builder{
		kinds:      DefaultConverterKinds(),
		opts:       DefaultParserOptions(),
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithFileSystem sets the filesystem used by the directory and file-content converters
func (b *Builder) WithFileSystem(fs FileSystem) *Builder {
	b.fs = fs
	return b
}

// WithEnvironment sets the variable expansion used on path values
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.env = env
	return b
}

// WithConverters sets the converter precedence order
func (b *Builder) WithConverters(kinds ...ConverterKind) *Builder {
	if len(kinds) == 0 {
		b.err = fmt.Errorf("at least one converter kind is required")
		return b
	}
	b.kinds = kinds
	return b
}

// WithRegistry uses a prebuilt registry; file system, environment and converter settings are then ignored
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithCaseSensitive toggles case-sensitive long names
func (b *Builder) WithCaseSensitive(enabled bool) *Builder {
	b.opts.CaseSensitive = enabled
	return b
}

// WithAbbreviations toggles unique-prefix matching of long names
func (b *Builder) WithAbbreviations(enabled bool) *Builder {
	b.opts.AllowAbbreviations = enabled
	return b
}

// WithLogger sets the logger for binding diagnostics
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithEnvPrefix fills arguments missing from the command line from PREFIX_NAME variables.
// Dots and dashes in argument names become underscores.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envTransform = defaultEnvTransform(prefix)
	return b
}

// WithEnvTransform sets a custom argument name to environment variable mapping
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.envTransform = fn
	return b
}

// WithDefaultsFile reads argument values from a TOML, JSON or YAML file.
// The file ranks below the environment and above default tags.
func (b *Builder) WithDefaultsFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileDiscovery enables automatic defaults file discovery.
// An explicit WithDefaultsFile path takes priority.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithValidator adds a validation function that runs after binding
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Parser for target with all specified options
func (b *Builder) Build(target any) (*Parser, error) {
	if b.err != nil {
		return nil, b.err
	}

	registry := b.registry
	if registry == nil {
		registry = NewRegistry(b.fs, b.env)
		for _, kind := range b.kinds {
			if err := registry.Add(kind); err != nil {
				return nil, fmt.Errorf("failed to assemble converters: %w", err)
			}
		}
	}

	p, err := NewParser(target, registry, b.opts)
	if err != nil {
		return nil, err
	}

	if b.envTransform != nil {
		p.addLayer(p.envLayer(registry.env, b.envTransform))
	}

	file := b.file
	if file == "" && b.discovery != nil {
		file = discoverFile(*b.discovery, b.args, registry.fs, registry.env)
	}
	if file != "" {
		layer, err := p.fileLayer(registry.fs, file)
		if err != nil {
			return nil, err
		}
		p.addLayer(layer)
	}
	return p, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild(target any) *Parser {
	p, err := b.Build(target)
	if err != nil {
		panic(fmt.Sprintf("argbind build failed: %v", err))
	}
	return p
}

// BuildAndBind builds a parser for target, binds the configured args and runs the validators
func (b *Builder) BuildAndBind(target any) error {
	p, err := b.Build(target)
	if err != nil {
		return err
	}

	args := b.args
	if b.discovery != nil {
		_, args = cliFlagValue(args, b.discovery.CLIFlag)
	}

	if err := p.Parse(args); err != nil {
		return err
	}

	for _, validator := range b.validators {
		if err := validator(target); err != nil {
			return fmt.Errorf("argument validation failed: %w", err)
		}
	}
	return nil
}
