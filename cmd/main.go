// FILE: cmd/main.go
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/argbind"
	"github.com/spf13/cobra"
)

// SignOptions is the argument schema of the sign command
type SignOptions struct {
	Files   []string               `arg:"files,positional,required" help:"files whose content is signed"`
	Key     []byte                 `arg:"key,short=k,required" help:"HMAC key, base64 or 0x-prefixed hex"`
	Exclude []string               `arg:"exclude,flags=file" help:"file listing names to skip, one per line"`
	WorkDir argbind.DirectoryEntry `arg:"workdir,short=C,flags=dir" default:"." help:"directory the files are relative to"`
	Timeout time.Duration          `arg:"timeout" default:"10s" help:"give up after this long"`
	Verbose bool                   `arg:"verbose,short=v" help:"log binding details"`
}

func main() {
	var opts SignOptions

	// cobra owns the command line, so the defaults file is only found by env var or search path
	discovery := argbind.DefaultDiscoveryOptions("argbind-sign")
	discovery.CLIFlag = ""

	parser, err := argbind.NewBuilder().
		WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))).
		WithEnvPrefix("ARGBIND_SIGN_").
		WithFileDiscovery(discovery).
		Build(&opts)
	if err != nil {
		log.Fatal("Failed to build argument parser:", err)
	}

	cmd := &cobra.Command{
		Use:          "argbind-sign [flags] files...",
		Short:        "Sign files with an HMAC key",
		SilenceUsage: true,
	}
	binding := parser.AttachFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := binding.Finish(args); err != nil {
			return err
		}
		if opts.Verbose {
			fmt.Fprint(os.Stderr, parser.Debug())
		}
		return sign(cmd, &opts)
	}
	cmd.SetUsageTemplate("Usage:\n  {{.UseLine}}\n\n" + parser.Usage())

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sign(cmd *cobra.Command, opts *SignOptions) error {
	skip := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		skip[name] = true
	}

	deadline := time.Now().Add(opts.Timeout)
	for _, name := range opts.Files {
		if skip[name] {
			continue
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %s", opts.Timeout)
		}

		data, err := os.ReadFile(filepath.Join(opts.WorkDir.Path(), name))
		if err != nil {
			return err
		}
		mac := hmac.New(sha256.New, opts.Key)
		mac.Write(data)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(mac.Sum(nil)), name)
	}
	return nil
}
