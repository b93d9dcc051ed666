// Command jv is an interactive terminal viewer for JSON documents.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/jv/app"
	"github.com/lixenwraith/jv/config"
	"github.com/lixenwraith/jv/nav"
	"github.com/lixenwraith/jv/parse"
	"github.com/lixenwraith/jv/terminal"
	"github.com/lixenwraith/jv/value"
)

// CLI defines the command-line interface
var CLI struct {
	File          string `arg:"" help:"JSON file to view." type:"path"`
	Config        string `help:"Path to config file (default $XDG_CONFIG_HOME/jv/config.toml)." short:"c" type:"path"`
	Color         string `help:"Color mode: auto, truecolor, 256. Overrides the config file."`
	NoMouse       bool   `help:"Disable mouse reporting."`
	DecodeUnicode bool   `help:"Decode unicode escapes as UTF-16 code units instead of raw byte pairs."`
	Debug         bool   `help:"Write a debug log to logs/jv.log." short:"d"`
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	// Panic Recovery: ensure the terminal is reset even if the viewer crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mJV CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			code = 1
		}
	}()

	parser := kong.Must(&CLI,
		kong.Name("jv"),
		kong.Description("An interactive terminal viewer for JSON documents"),
		kong.UsageOnError(),
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
		return 1
	}

	if logFile := setupLogging(CLI.Debug); logFile != nil {
		defer logFile.Close()
	}

	// Checked before any terminal mutation so there is nothing to restore
	if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Not a terminal")
		return 1
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if CLI.Color != "" {
		cfg.UI.Color = CLI.Color
	}
	if CLI.NoMouse {
		cfg.UI.Mouse = false
	}
	if CLI.DecodeUnicode {
		cfg.Parser.DecodeUnicode = true
	}

	colorMode, err := cfg.ColorMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	keys, err := cfg.Keymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	root, err := load(CLI.File, cfg.Parser.DecodeUnicode)
	if err != nil {
		var synErr *parse.SyntaxError
		if errors.As(err, &synErr) {
			parse.Diagnostic(os.Stderr, CLI.File, err)
		} else {
			log.Printf("read %s: %v", CLI.File, err)
			fmt.Fprintln(os.Stderr, "Error reading input file")
		}
		return 1
	}
	defer value.Free(root)

	term := terminal.New(colorMode)
	viewer := app.New(term, root, app.Options{
		Filename: CLI.File,
		Theme:    theme,
		Keys:     keys,
		Mouse:    cfg.UI.Mouse,
	})

	if err := viewer.Run(); err != nil {
		var sigErr *app.SignalError
		if errors.As(err, &sigErr) {
			return sigErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// load parses the input file; the depth limit keeps every container reachable
// within the navigation stack
func load(path string, decodeUnicode bool) (value.Value, error) {
	start := time.Now()
	opts := []parse.Option{parse.MaxDepth(nav.MaxDepth - 1)}
	if decodeUnicode {
		opts = append(opts, parse.DecodeUnicode(true))
	}

	root, err := parse.ParseFile(path, opts...)
	if err != nil {
		return nil, err
	}
	log.Printf("parsed %s in %v", path, time.Since(start))
	return root, nil
}
