package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/booksales/internal/cli"
	"github.com/mrlokans/booksales/internal/config"
	"github.com/mrlokans/booksales/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type runner interface {
	ParseFlags(args []string, cfg *config.Config) error
	Run() error
}

func main() {
	cfg := config.NewConfig()

	// No command or a leading flag runs the default flow
	if len(os.Args) < 2 || (len(os.Args[1]) > 0 && os.Args[1][0] == '-' && !isHelp(os.Args[1])) {
		execute(cli.NewRunCommand(), os.Args[1:], cfg)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		execute(cli.NewRunCommand(), args, cfg)

	case "schema":
		execute(cli.NewSchemaCommand(), args, cfg)

	case "load":
		execute(cli.NewLoadCommand(), args, cfg)

	case "query":
		execute(cli.NewQueryCommand(), args, cfg)

	case "serve":
		entrypoint.Run(cfg, Version)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func execute(cmd runner, args []string, cfg *config.Config) {
	if err := cmd.ParseFlags(args, cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run      Create tables, load the seed file and query sales (default)\n")
	fmt.Fprintf(os.Stderr, "  schema   Create or drop the catalog tables\n")
	fmt.Fprintf(os.Stderr, "  load     Load a seed file into the catalog\n")
	fmt.Fprintf(os.Stderr, "  query    Print sales for a publisher id or name\n")
	fmt.Fprintf(os.Stderr, "  serve    Start the HTTP API server\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
