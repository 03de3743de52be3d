// File: lixenwraith/argbind/convenience.go
package argbind

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
)

// Bind parses args onto target with the default converters, OS filesystem and environment.
// This is the recommended way to bind arguments for most applications
func Bind(target any, args []string) error {
	return NewBuilder().WithArgs(args).BuildAndBind(target)
}

// MustBind is like Bind but panics on error
func MustBind(target any, args []string) {
	if err := Bind(target, args); err != nil {
		panic(fmt.Sprintf("argument binding failed: %v", err))
	}
}

// FlagBinding collects pflag-driven assignments for one parse.
type FlagBinding struct {
	state *parseState
}

// AttachFlags registers every named argument on fs as a pflag.Value that converts through
// the registry and binds onto the parser's target when pflag sets it.
// Call Finish with the remaining positional args once fs has parsed.
func (p *Parser) AttachFlags(fs *pflag.FlagSet) *FlagBinding {
	state := p.newState()
	for _, a := range p.args {
		if a.Positional {
			continue
		}

		value := &flagValue{state: state, arg: a}
		f := fs.VarPF(value, a.Name, a.Short, a.Help)
		if a.Multiplicity == Switch {
			f.NoOptDefVal = "true"
		}

		for _, alias := range a.Aliases {
			af := fs.VarPF(value, alias, "", a.Help)
			af.NoOptDefVal = f.NoOptDefVal
			af.Hidden = true
		}
	}
	return &FlagBinding{state: state}
}

// Finish binds positional values, then applies defaults and reports missing required arguments.
func (fb *FlagBinding) Finish(positionals []string) error {
	for _, token := range positionals {
		if err := fb.state.bindPositional(token); err != nil {
			return err
		}
	}
	return fb.state.finish()
}

// flagValue adapts one argument to pflag.Value
type flagValue struct {
	state *parseState
	arg   *Argument
}

func (v *flagValue) String() string {
	if v.state == nil || v.arg == nil {
		return ""
	}
	if v.state.seen[v.arg] > 0 {
		return fmt.Sprint(v.state.p.target.FieldByIndex(v.arg.index).Interface())
	}
	return v.arg.Default
}

func (v *flagValue) Set(s string) error {
	return v.state.bind(v.arg, s)
}

func (v *flagValue) Type() string {
	if v.arg.Multiplicity == Switch {
		return "bool"
	}
	return v.arg.Target.String()
}

// Usage renders help text for the schema.
func (p *Parser) Usage() string {
	var b strings.Builder

	if len(p.positionals) > 0 {
		b.WriteString("Arguments:\n")
		for _, a := range p.positionals {
			name := a.Name
			if a.Multiplicity == Many {
				name += "..."
			}
			b.WriteString(fmt.Sprintf("  %-20s %s (%s)\n", name, a.Help, a.Target))
		}
	}

	fs := pflag.NewFlagSet("usage", pflag.ContinueOnError)
	p.AttachFlags(fs)
	if fs.HasFlags() {
		b.WriteString("Options:\n")
		b.WriteString(fs.FlagUsages())
	}
	return b.String()
}

// Debug returns a formatted string showing the schema, the converter order and the bound values
func (p *Parser) Debug() string {
	var b strings.Builder
	b.WriteString("Argument Debug Info:\n")
	b.WriteString(fmt.Sprintf("Converters: %v\n", p.registry.Kinds()))
	for _, l := range p.layers {
		b.WriteString(fmt.Sprintf("Source: %s %s (%d arguments)\n", l.source, l.origin, len(l.values)))
	}
	b.WriteString("Arguments:\n")

	for _, a := range p.args {
		b.WriteString(fmt.Sprintf("  %s:\n", a.Name))
		b.WriteString(fmt.Sprintf("    Type: %s\n", a.Target))
		b.WriteString(fmt.Sprintf("    Multiplicity: %s\n", a.Multiplicity))
		if a.Flags != NoFlags {
			b.WriteString(fmt.Sprintf("    Flags: %s\n", a.Flags))
		}
		if a.HasDefault {
			b.WriteString(fmt.Sprintf("    Default: %q\n", a.Default))
		}
		if a.Required {
			b.WriteString("    Required: true\n")
		}
	}

	b.WriteString("Bound values:\n")
	b.WriteString(spew.Sdump(p.target.Interface()))
	return b.String()
}
