package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"regularfa/internal/automaton"
	"regularfa/internal/grammar"
	"regularfa/internal/render"
)

// Config holds the runner configuration
type Config struct {
	// Grammar settings
	GrammarPath string
	Strict      bool  // Whether conflicting transitions are fatal
	MaxDepth    int   // Maximum expansions per sample (0 = unlimited)
	Seed        int64 // Random seed (0 = seed from the clock)

	// Commands
	Generate  int      // Number of strings to generate
	Tree      bool     // Whether to print derivation trees of generated strings
	Validate  []string // Strings to validate
	Benchmark int      // Number of samples for the benchmark
	Visualize string   // Diagram output path (.html, .png, .pdf)
	Export    string   // Automaton JSON output path

	// Runtime settings
	Concurrency int           // Benchmark workers
	Timeout     time.Duration // Timeout for diagram rendering
	Verbose     bool
	LogPath     string    // Log file, stderr when empty
	Out         io.Writer // Command output
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig(grammarPath string) *Config {
	return &Config{
		GrammarPath: grammarPath,
		Concurrency: 1,
		Timeout:     30 * time.Second,
		Out:         os.Stdout,
	}
}

// Runner loads a grammar once and runs the configured commands against it
type Runner struct {
	config    *Config
	grammar   *grammar.Grammar
	automaton *automaton.Automaton
	commands  []Command
	logger    *log.Logger
	logFile   *os.File
}

// New loads the grammar, builds its automaton and prepares the commands
func New(config *Config) (*Runner, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	r := &Runner{config: config}

	// Initialize logger
	var logOut io.Writer = os.Stderr
	if config.LogPath != "" {
		logFile, err := os.Create(config.LogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		r.logFile = logFile
		logOut = logFile
	}
	r.logger = log.New(logOut, "", log.LstdFlags)

	g, err := grammar.Load(config.GrammarPath)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to load grammar: %w", err)
	}
	r.grammar = g

	if conflicts := g.Conflicts(); len(conflicts) > 0 {
		for _, c := range conflicts {
			r.logger.Printf("warning: conflicting transition: %s", c)
		}
		if config.Strict {
			r.Close()
			return nil, &grammar.ConflictError{Conflicts: conflicts}
		}
	}

	r.automaton = g.BuildAutomaton()
	if config.Verbose {
		r.logger.Printf("Loaded %s: %d non-terminals, %d terminals, %d rules, %d transitions",
			config.GrammarPath, len(g.NonTerminals()), len(g.Terminals()),
			len(g.Rules()), len(r.automaton.Transitions()))
	}

	r.commands = r.buildCommands()
	return r, nil
}

// buildCommands picks the commands to run in the order generate, validate,
// export, visualize, benchmark
func (r *Runner) buildCommands() []Command {
	c := r.config
	var commands []Command

	if c.Generate > 0 {
		commands = append(commands, &generateCommand{
			grammar:   r.grammar,
			automaton: r.automaton,
			count:     c.Generate,
			tree:      c.Tree,
			seed:      c.Seed,
			maxDepth:  c.MaxDepth,
			verbose:   c.Verbose,
		})
	}
	if len(c.Validate) > 0 {
		commands = append(commands, &validateCommand{
			automaton: r.automaton,
			inputs:    c.Validate,
		})
	}
	if c.Export != "" {
		commands = append(commands, &exportCommand{
			automaton: r.automaton,
			path:      c.Export,
		})
	}
	if c.Visualize != "" {
		commands = append(commands, &visualizeCommand{
			automaton: r.automaton,
			browser:   render.NewBrowser(c.Timeout),
			path:      c.Visualize,
		})
	}
	if c.Benchmark > 0 {
		commands = append(commands, &benchmarkCommand{
			grammar:     r.grammar,
			count:       c.Benchmark,
			concurrency: c.Concurrency,
			seed:        c.Seed,
			maxDepth:    c.MaxDepth,
		})
	}
	return commands
}

// Grammar returns the loaded grammar
func (r *Runner) Grammar() *grammar.Grammar {
	return r.grammar
}

// Automaton returns the automaton built from the grammar
func (r *Runner) Automaton() *automaton.Automaton {
	return r.automaton
}

// Run executes the configured commands, stopping at the first error
func (r *Runner) Run(ctx context.Context) error {
	for _, cmd := range r.commands {
		start := time.Now()
		if err := cmd.Run(ctx, r.config.Out); err != nil {
			return fmt.Errorf("%s failed: %w", cmd.Name(), err)
		}
		if r.config.Verbose {
			r.logger.Printf("%s finished in %s", cmd.Name(), time.Since(start))
		}
	}
	return nil
}

// Close releases the log file, if any
func (r *Runner) Close() error {
	if r.logFile == nil {
		return nil
	}
	err := r.logFile.Close()
	r.logFile = nil
	return err
}

// validateConfig checks if the configuration is valid
func validateConfig(config *Config) error {
	if config.GrammarPath == "" {
		return fmt.Errorf("grammar path is required")
	}
	if config.Generate < 0 {
		return fmt.Errorf("number of strings to generate must not be negative")
	}
	if config.Benchmark < 0 {
		return fmt.Errorf("number of benchmark samples must not be negative")
	}
	if config.Concurrency < 1 || config.Concurrency > 100 {
		return fmt.Errorf("concurrency must be between 1 and 100")
	}
	if config.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative")
	}
	if config.Visualize != "" && config.Timeout < 1*time.Second {
		return fmt.Errorf("timeout must be at least 1 second")
	}
	if config.Out == nil {
		return fmt.Errorf("output writer is required")
	}
	return nil
}
