package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"regularfa/internal/runner"
)

func main() {
	// Parse command line flags
	config := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load grammar and run commands
	r, err := runner.New(config)
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}
	defer r.Close()

	if err := r.Run(ctx); err != nil {
		r.Close()
		log.Fatalf("Error: %v", err)
	}
}

func parseFlags() *runner.Config {
	// Grammar settings
	configPath := flag.String("config", "config/variant_13.json", "Path to grammar definition (JSON or YAML)")
	strict := flag.Bool("strict", false, "Fail on rules that overwrite an earlier transition")
	maxDepth := flag.Int("max-depth", 0, "Maximum expansions per generated string (0 = unlimited)")
	seed := flag.Int64("seed", 0, "Random seed (0 = seed from the clock)")

	// Commands
	generate := flag.Int("generate", 0, "Generate N strings")
	tree := flag.Bool("tree", false, "Print the derivation tree of each generated string")
	var validate []string
	flag.Func("validate", "Validate a string (repeatable)", func(s string) error {
		validate = append(validate, s)
		return nil
	})
	benchmark := flag.Int("benchmark", 0, "Benchmark generation speed (N samples)")
	visualize := flag.String("visualize", "", "Save automaton graph to file (.html, .png or .pdf)")
	export := flag.String("export", "", "Save automaton as JSON")

	// Runtime settings
	concurrency := flag.Int("c", 1, "Number of benchmark workers")
	timeout := flag.Duration("t", 30*time.Second, "Timeout for rendering the graph")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	logPath := flag.String("log", "", "Write log to file instead of stderr")

	// Parse flags
	flag.Parse()

	if *generate == 0 && len(validate) == 0 && *benchmark == 0 && *visualize == "" && *export == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to do")
		flag.Usage()
		os.Exit(1)
	}

	// Create config with parsed values
	config := runner.DefaultConfig(*configPath)
	config.Strict = *strict
	config.MaxDepth = *maxDepth
	config.Seed = *seed

	config.Generate = *generate
	config.Tree = *tree
	config.Validate = validate
	config.Benchmark = *benchmark
	config.Visualize = *visualize
	config.Export = *export

	config.Concurrency = *concurrency
	config.Timeout = *timeout
	config.Verbose = *verbose
	config.LogPath = *logPath
	return config
}

func init() {
	// Customize usage output
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] \n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Converts a regular grammar to a finite automaton, generates and validates strings.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nExamples:")
		fmt.Fprintln(os.Stderr, "  Generate strings:")
		fmt.Fprintln(os.Stderr, "    regularfa -generate 10")
		fmt.Fprintln(os.Stderr, "\n  Validate strings and show the state path:")
		fmt.Fprintln(os.Stderr, "    regularfa -validate aac -validate abx")
		fmt.Fprintln(os.Stderr, "\n  Draw the automaton:")
		fmt.Fprintln(os.Stderr, "    regularfa -config config/a_plus_c.yaml -visualize fa.png")
		fmt.Fprintln(os.Stderr, "\n  Benchmark with 8 workers:")
		fmt.Fprintln(os.Stderr, "    regularfa -benchmark 1000000 -c 8")
	}
}
