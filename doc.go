// File: lixenwraith/argbind/doc.go

// Package argbind converts raw command-line arguments into a strongly-typed struct,
// driven by a declarative schema of struct tags.
//
// Features:
//   - Chain of value converters selected in a fixed precedence order
//   - Byte blobs from base64 or hex ("0x" prefix auto-detected)
//   - Existing-directory arguments resolving to paths or directory listings
//   - File-content arguments: text, lines, bytes, YAML document trees,
//     TOML/YAML/JSON maps, or one typed value per line
//   - Everything else through mapstructure weak decoding (numbers, booleans,
//     durations, times, IPs, URLs, TextUnmarshaler types)
//   - Switch, single and variadic arguments, positionals, aliases, abbreviations
//   - Environment variables and a discovered TOML/YAML/JSON defaults file
//     as fallback value sources
//   - pflag/cobra integration and a fluent builder
//
// Quick Start:
//
//	type Options struct {
//	    Input   []string      `arg:"input,positional,required" help:"files to process"`
//	    Key     []byte        `arg:"key,short=k,flags=hex" help:"signing key"`
//	    Out     string        `arg:"out,flags=dir" default:"."`
//	    Timeout time.Duration `arg:"timeout" default:"30s"`
//	    Verbose bool          `arg:"verbose,short=v"`
//	}
//
//	var opts Options
//	if err := argbind.Bind(&opts, os.Args[1:]); err != nil {
//	    log.Fatal(err)
//	}
//
// Converter Precedence (first success wins):
//  1. binary             byte and []byte targets
//  2. existing-directory arguments flagged dir
//  3. file-content       arguments flagged file
//  4. descriptor         everything else, the catch-all
//
// Value Sources (highest priority first):
//  1. command line
//  2. environment, with Builder.WithEnvPrefix
//  3. defaults file, with Builder.WithDefaultsFile or WithFileDiscovery
//  4. default struct tag
//
// Every source feeds raw strings through the same converter chain.
//
// Errors:
// A converter that is not responsible for a value declines and the next one is
// tried. A converter that has committed to a value (its flag is set) fails with a
// *ParseError instead, which aborts binding; errors.Is(err, ErrParse) matches it.
//
// Thread Safety:
// Registries are read-only after assembly and may be shared when the FileSystem
// is safe for concurrent reads. A Parser writes into its target and must not be
// used from several goroutines at once.
package argbind
