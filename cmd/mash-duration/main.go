// Command mash-duration parses, converts, formats and calculates durations.
//
// Usage:
//
//	mash-duration <command> [flags] <args>
//
// Commands:
//
//	parse    Parse a unit-suffixed string into milliseconds
//	convert  Show a duration in every unit
//	format   Render a duration as human-readable text
//	calc     Add, subtract, scale, divide or compare durations
//	repl     Interactive calculator
//
// Examples:
//
//	# Milliseconds in 90 seconds
//	mash-duration parse 90s
//
//	# Human-readable, abbreviated, three units
//	mash-duration format -short -max-units 3 100000000
//
//	# Arithmetic with aliases from a config file
//	mash-duration calc -config durations.yaml sprint - 3d
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mash-protocol/duration-go/cmd/mash-duration/commands"
	"github.com/mash-protocol/duration-go/cmd/mash-duration/interactive"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "parse":
		exitCode = commands.RunParse(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "format":
		exitCode = commands.RunFormat(args, os.Stdout, os.Stderr)
	case "calc":
		exitCode = commands.RunCalc(args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = runRepl(args)
	case "version", "-v", "--version":
		fmt.Println("mash-duration version 0.1.0")
		exitCode = exitSuccess
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	var common commands.CommonOptions
	common.Register(fs)
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	cfg, _, err := common.Load(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	shell, err := interactive.NewShell(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// readline reports SIGINT as ErrInterrupt; only SIGTERM ends the loop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	shell.Run(ctx)
	return exitSuccess
}

func printUsage() {
	fmt.Println(`mash-duration - duration parsing and formatting tool

Usage:
  mash-duration <command> [options] <args>

Commands:
  parse     Parse <number><unit> into milliseconds
  convert   Show a duration in every unit
  format    Render a duration as human-readable text
  calc      Add, subtract, scale, divide or compare durations
  repl      Interactive calculator

Units: ms, s, m, h, d, w, y (months are 30 days, years 365 days)

Examples:
  mash-duration parse 90s
  mash-duration convert -unit h 5400000
  mash-duration format -short 36h
  mash-duration calc 1d / 3

Global Options:
  -h, --help     Show this help
  -v, --version  Show version information

For command-specific help, run:
  mash-duration <command> -help`)
}
