package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/bionet/pkg/config"
	"github.com/dd0wney/bionet/pkg/logging"
)

const version = "v0.3.0"

// env carries what every command needs
type env struct {
	cfg    *config.Config
	logger logging.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	args    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"inspect", "<file>", "Print counts, parameters and every query result", runInspect},
	{"query", "<file> <graphql>", "Run a GraphQL query and print the JSON result", runQuery},
	{"serve", "<file>", "Serve the network over GraphQL and Prometheus HTTP endpoints", runServe},
	{"convert", "<in> <out>", "Re-encode a network; formats follow the file extensions", runConvert},
	{"push", "<file> <key>", "Copy a network file into the configured store", runPush},
	{"pull", "<key> <file>", "Copy a network from the configured store to a file", runPull},
	{"list", "[prefix]", "List keys in the configured store", runList},
	{"metrics", "<file>", "Load, run all queries and print Prometheus metrics", runMetrics},
}

// errUsage marks argument errors; run prints usage for them
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("bionet", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", os.Getenv("BIONET_CONFIG"), "YAML configuration file")
	global.Usage = func() { printUsage(stderr) }
	if err := global.Parse(args); err != nil {
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	switch rest[0] {
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "bionet %s\n", version)
		return 0
	}

	cmd, ok := findCommand(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", rest[0])
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	e := &env{
		cfg:    cfg,
		logger: logging.NewJSONLogger(stderr, cfg.Level()).With(logging.Component("cli")),
		stdout: stdout,
		stderr: stderr,
	}

	if err := cmd.run(e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Usage: bionet %s %s\n", cmd.name, cmd.args)
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `bionet - inspect and query signed biological interaction networks

Usage:
  bionet [-config file] <command> [arguments]

Commands:
`)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %-18s %s\n", c.name, c.args, c.summary)
	}
	fmt.Fprint(w, `  help                        Show this help message
  version                     Show version information

Network files are JSON unless the extension says otherwise
(.yaml/.yml for YAML, .sz/.snappy for snappy compressed JSON).
`)
}
