package argbind

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// ParserOptions configures how option names are resolved
type ParserOptions struct {
	// CaseSensitive disables case folding of long names; short names are always exact
	CaseSensitive bool

	// AllowAbbreviations accepts any unique prefix of a long name
	AllowAbbreviations bool

	// Logger receives binding diagnostics at debug level. Nil discards.
	Logger *slog.Logger
}

// DefaultParserOptions returns the standard options
func DefaultParserOptions() ParserOptions {
	return ParserOptions{}
}

// Parser resolves raw tokens to declared arguments and binds converted values onto its target.
type Parser struct {
	registry    *Registry
	target      reflect.Value // the struct behind the bound pointer
	args        []*Argument
	names       map[string]*Argument
	shorts      map[string]*Argument
	positionals []*Argument
	layers      []valueLayer // consulted in order for arguments missing from the command line
	opts        ParserOptions
	logger      *slog.Logger
}

// NewParser builds the argument schema of target, which must be a non-nil pointer to a struct.
// A nil registry means NewDefaultRegistry over the OS filesystem and environment.
func NewParser(target any, registry *Registry, opts ParserOptions) (*Parser, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("%w: bind target must be a non-nil pointer, got %T", ErrInvalidSchema, target)
	}
	if registry == nil {
		registry = NewDefaultRegistry(nil, nil)
	}

	args, err := buildSchema(rv.Elem().Type())
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Parser{
		registry: registry,
		target:   rv.Elem(),
		args:     args,
		opts:     opts,
		logger:   logger,
	}
	if err := p.indexArguments(); err != nil {
		return nil, err
	}
	return p, nil
}

// Arguments returns the schema in declaration order.
func (p *Parser) Arguments() []*Argument {
	return append([]*Argument(nil), p.args...)
}

// Registry returns the converter registry used for binding.
func (p *Parser) Registry() *Registry { return p.registry }

func (p *Parser) foldName(name string) string {
	if p.opts.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func (p *Parser) indexArguments() error {
	p.names = make(map[string]*Argument)
	p.shorts = make(map[string]*Argument)

	for _, a := range p.args {
		if a.Positional {
			if n := len(p.positionals); n > 0 && p.positionals[n-1].Multiplicity == Many {
				return fmt.Errorf("%w: positional argument %s follows variadic %s", ErrInvalidSchema, a.Name, p.positionals[n-1].Name)
			}
			p.positionals = append(p.positionals, a)
		}

		for _, name := range append([]string{a.Name}, a.Aliases...) {
			key := p.foldName(name)
			if other, dup := p.names[key]; dup {
				return fmt.Errorf("%w: name %q used by both %s and %s", ErrInvalidSchema, name, other.Name, a.Name)
			}
			p.names[key] = a
		}

		if a.Short != "" {
			if other, dup := p.shorts[a.Short]; dup {
				return fmt.Errorf("%w: short name %q used by both %s and %s", ErrInvalidSchema, a.Short, other.Name, a.Name)
			}
			p.shorts[a.Short] = a
		}
	}
	return nil
}

func (p *Parser) addLayer(l valueLayer) {
	p.layers = append(p.layers, l)
}

// Parse binds args onto the target. It stops at the first fatal error.
// Defaults and required checks run after every token has been consumed.
func (p *Parser) Parse(args []string) error {
	state := p.newState()
	if err := state.consume(args); err != nil {
		return err
	}
	return state.finish()
}

// resolve maps an option name to its argument
func (p *Parser) resolve(name string, short bool) (*Argument, error) {
	if short && len([]rune(name)) == 1 {
		if a, ok := p.shorts[name]; ok {
			return a, nil
		}
	}

	key := p.foldName(name)
	if a, ok := p.names[key]; ok {
		return a, nil
	}

	if p.opts.AllowAbbreviations && key != "" {
		var matches []*Argument
		for n, a := range p.names {
			if strings.HasPrefix(n, key) && !slices.Contains(matches, a) {
				matches = append(matches, a)
			}
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			candidates := make([]string, len(matches))
			for i, a := range matches {
				candidates[i] = a.Name
			}
			slices.Sort(candidates)
			return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousArgument, name, strings.Join(candidates, ", "))
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownArgument, name)
}

// bindValue converts one raw token and stores the result in the argument's field
func (p *Parser) bindValue(arg *Argument, raw string, appendTo bool) error {
	res, err := p.registry.TryConvert(raw, arg.Target, arg.Flags)
	if err != nil {
		return fmt.Errorf("argument %s: %w", arg.Name, err)
	}
	if !res.Ok() {
		return fmt.Errorf("argument %s: %w", arg.Name,
			parseErrorf(nil, "cannot convert %q to %s", truncateValue(raw), arg.Target))
	}

	dst := p.target.FieldByIndex(arg.index)
	if err := assignValues(dst, arg.Target, res.Values(), appendTo); err != nil {
		return fmt.Errorf("argument %s: %w", arg.Name, err)
	}

	p.logger.Debug("bound argument", "name", arg.Name, "type", arg.Target.String(), "values", res.Len())
	return nil
}

// parseState tracks occurrences during one parse
type parseState struct {
	p          *Parser
	seen       map[*Argument]int
	positional int
}

func (p *Parser) newState() *parseState {
	return &parseState{p: p, seen: make(map[*Argument]int)}
}

func (s *parseState) consume(args []string) error {
	optionsDone := false
	i := 0
	for i < len(args) {
		token := args[i]
		i++

		if !optionsDone && token == "--" {
			optionsDone = true
			continue
		}
		if optionsDone || !isOptionToken(token) {
			if err := s.bindPositional(token); err != nil {
				return err
			}
			continue
		}

		short := !strings.HasPrefix(token, "--")
		name, inline, hasInline := splitOption(token)
		arg, err := s.p.resolve(name, short)
		if err != nil {
			return err
		}

		switch arg.Multiplicity {
		case Switch:
			value := "true"
			if hasInline {
				value = inline
			}
			if err := s.bind(arg, value); err != nil {
				return err
			}

		case Single:
			value := inline
			if !hasInline {
				if i >= len(args) || args[i] == "--" || isOptionToken(args[i]) {
					return fmt.Errorf("%w: %s", ErrMissingValue, arg.Name)
				}
				value = args[i]
				i++
			}
			if err := s.bind(arg, value); err != nil {
				return err
			}

		case Many:
			var values []string
			if hasInline {
				values = append(values, inline)
			}
			for i < len(args) && args[i] != "--" && !isOptionToken(args[i]) {
				values = append(values, args[i])
				i++
			}
			if len(values) == 0 {
				return fmt.Errorf("%w: %s", ErrMissingValue, arg.Name)
			}
			for _, v := range values {
				if err := s.bind(arg, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *parseState) bind(arg *Argument, raw string) error {
	n := s.seen[arg]
	if n > 0 && arg.Multiplicity != Many {
		return fmt.Errorf("%w: %s", ErrMultiplicity, arg.Name)
	}
	if err := s.p.bindValue(arg, raw, n > 0); err != nil {
		return err
	}
	s.seen[arg] = n + 1
	return nil
}

func (s *parseState) bindPositional(token string) error {
	positionals := s.p.positionals
	// Skip positionals already given by name
	for s.positional < len(positionals) {
		a := positionals[s.positional]
		if s.seen[a] == 0 || a.Multiplicity == Many {
			break
		}
		s.positional++
	}
	if s.positional >= len(positionals) {
		return fmt.Errorf("%w: unexpected value %q", ErrUnknownArgument, truncateValue(token))
	}

	arg := positionals[s.positional]
	if arg.Multiplicity != Many {
		s.positional++
	}
	return s.bind(arg, token)
}

// finish fills arguments that were not given from the value layers and default tags,
// then reports missing required ones
func (s *parseState) finish() error {
	var missing []error
	for _, a := range s.p.args {
		if s.seen[a] > 0 {
			continue
		}
		applied, err := s.applyLayers(a)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if a.HasDefault {
			if err := s.applyDefault(a); err != nil {
				return err
			}
			continue
		}
		if a.Required {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingArgument, a.Name))
		}
	}
	return errors.Join(missing...)
}

// applyLayers binds the first layer holding a value for a
func (s *parseState) applyLayers(a *Argument) (bool, error) {
	for _, l := range s.p.layers {
		tokens, ok := l.values[a]
		if !ok {
			continue
		}
		if len(tokens) > 1 && a.Multiplicity != Many {
			return false, fmt.Errorf("%w: %s from %s %s", ErrMultiplicity, a.Name, l.source, l.origin)
		}
		for i, token := range tokens {
			if err := s.p.bindValue(a, token, i > 0); err != nil {
				return false, fmt.Errorf("%s value from %s: %w", l.source, l.origin, err)
			}
		}
		s.p.logger.Debug("argument from source", "name", a.Name, "source", string(l.source), "origin", l.origin)
		return true, nil
	}
	return false, nil
}

// applyDefault binds the default tag; variadic defaults are comma separated
func (s *parseState) applyDefault(a *Argument) error {
	values := []string{a.Default}
	if a.Multiplicity == Many {
		values = strings.Split(a.Default, ",")
	}
	for i, v := range values {
		if err := s.p.bindValue(a, v, i > 0); err != nil {
			return fmt.Errorf("default value: %w", err)
		}
	}
	return nil
}

func isOptionToken(t string) bool {
	return len(t) > 1 && t[0] == '-' && !looksNumeric(t)
}

// splitOption strips the dashes and splits an inline "=value"
func splitOption(token string) (name, value string, hasValue bool) {
	name = strings.TrimPrefix(strings.TrimPrefix(token, "-"), "-")
	return strings.Cut(name, "=")
}
