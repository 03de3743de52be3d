// FILE: lixenwraith/argbind/example/main.go
package main

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/argbind"
)

// ServeOptions showcases the different converters.
type ServeOptions struct {
	Listen  net.IP              `arg:"listen" default:"127.0.0.1"`
	Port    uint16              `arg:"port,short=p" default:"8080"`
	Token   []byte              `arg:"token,flags=base64" help:"bearer token"`
	Peers   []int               `arg:"peers,flags=file" help:"file with one peer id per line"`
	Static  []argbind.FileEntry `arg:"static,flags=dir" help:"directory of static assets"`
	Config  map[string]any      `arg:"config,flags=file" help:"TOML, YAML or JSON settings"`
	Refresh time.Duration       `arg:"refresh" default:"1m"`
}

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Create the files the arguments point at.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating input files...")

	dir, err := os.MkdirTemp("", "argbind-example-*")
	if err != nil {
		log.Fatalf("❌ Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	staticDir := filepath.Join(dir, "static")
	peersFile := filepath.Join(dir, "peers.txt")
	configFile := filepath.Join(dir, "settings.toml")

	must(os.Mkdir(staticDir, 0755))
	must(os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html></html>"), 0644))
	must(os.WriteFile(peersFile, []byte("1\n\n 2 \n3\n"), 0644))
	must(os.WriteFile(configFile, []byte("[cache]\nsize = 64\n"), 0644))

	// =========================================================================
	// PART 2: BINDING
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Binding arguments...")

	os.Setenv("EXAMPLE_STATIC", staticDir)
	defer os.Unsetenv("EXAMPLE_STATIC")

	args := []string{
		"-p", "9090",
		"--token", "c2VjcmV0",
		"--peers", peersFile,
		"--static", "$EXAMPLE_STATIC",
		"--config=" + configFile,
	}

	var opts ServeOptions
	if err := argbind.Bind(&opts, args); err != nil {
		log.Fatalf("❌ Binding failed: %v", err)
	}

	log.Printf("✅ listen=%s port=%d refresh=%s", opts.Listen, opts.Port, opts.Refresh)
	log.Printf("✅ token=%q peers=%v", opts.Token, opts.Peers)
	for _, f := range opts.Static {
		log.Printf("✅ static file: %s", f.Name())
	}
	log.Printf("✅ config: %v", opts.Config)

	// =========================================================================
	// PART 3: ENVIRONMENT SOURCE
	// Values the command line leaves out come from EXAMPLE_* variables.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Filling arguments from the environment...")

	os.Setenv("EXAMPLE_PORT", "7070")
	defer os.Unsetenv("EXAMPLE_PORT")

	var fromEnv ServeOptions
	err = argbind.NewBuilder().
		WithEnvPrefix("EXAMPLE_").
		WithArgs([]string{"--refresh", "30s"}).
		BuildAndBind(&fromEnv)
	if err != nil {
		log.Fatalf("❌ Binding failed: %v", err)
	}
	log.Printf("✅ port=%d (env) refresh=%s (cli)", fromEnv.Port, fromEnv.Refresh)

	// =========================================================================
	// PART 4: A FATAL ERROR
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Pointing a dir argument at nothing...")

	var broken ServeOptions
	err = argbind.Bind(&broken, []string{"--static", filepath.Join(dir, "missing")})
	log.Printf("⚠️  %v", err)
}

func must(err error) {
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}
