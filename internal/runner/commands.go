package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"regularfa/internal/automaton"
	"regularfa/internal/grammar"
	"regularfa/internal/render"
)

// Command is a single action performed against a loaded grammar
type Command interface {
	// Name identifies the command in errors and logs
	Name() string

	// Run executes the command, writing its report to out
	Run(ctx context.Context, out io.Writer) error
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func verdict(accepted bool) string {
	if accepted {
		return "Accepted"
	}
	return "Rejected"
}

// generateCommand samples strings and checks each against the automaton
type generateCommand struct {
	grammar   *grammar.Grammar
	automaton *automaton.Automaton
	count     int
	tree      bool
	seed      int64
	maxDepth  int
	verbose   bool
}

func (c *generateCommand) Name() string { return "generate" }

func (c *generateCommand) Run(ctx context.Context, out io.Writer) error {
	coverage := grammar.NewCoverage(c.grammar)
	sampler := grammar.NewSampler(c.grammar, newRand(c.seed))
	sampler.MaxDepth = c.maxDepth
	sampler.Coverage = coverage

	fmt.Fprintf(out, "Generating %d strings:\n", c.count)
	for i := 0; i < c.count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var sample string
		var tree *grammar.DerivationTree
		var err error
		if c.tree {
			tree, err = sampler.SampleTree()
			if tree != nil {
				sample = tree.Leaves()
			}
		} else {
			sample, err = sampler.Sample()
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  %s -> %s\n", sample, verdict(c.automaton.Accepts(sample)))
		if tree != nil {
			fmt.Fprintf(out, "    %s\n", tree)
		}
	}

	if c.verbose {
		stats := coverage.Stats()
		fmt.Fprintf(out, "Rule coverage: %d/%d (%.1f%%)\n", stats.Covered, stats.Total, stats.Percentage)
		for _, rule := range stats.Uncovered {
			fmt.Fprintf(out, "  uncovered: %s\n", rule)
		}
	}
	return nil
}

// validateCommand checks strings against the automaton and prints the path
type validateCommand struct {
	automaton *automaton.Automaton
	inputs    []string
}

func (c *validateCommand) Name() string { return "validate" }

func (c *validateCommand) Run(ctx context.Context, out io.Writer) error {
	for _, input := range c.inputs {
		accepted, path := c.automaton.AcceptsWithPath(input)
		fmt.Fprintf(out, "String '%s' -> %s\n", input, verdict(accepted))
		fmt.Fprintf(out, "Path: %v\n", path)
	}
	return nil
}

// exportCommand writes the automaton as JSON
type exportCommand struct {
	automaton *automaton.Automaton
	path      string
}

func (c *exportCommand) Name() string { return "export" }

func (c *exportCommand) Run(ctx context.Context, out io.Writer) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := automaton.Export(f, c.automaton); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Automaton exported to %s\n", c.path)
	return nil
}

// visualizeCommand renders the automaton diagram
type visualizeCommand struct {
	automaton *automaton.Automaton
	browser   *render.Browser
	path      string
}

func (c *visualizeCommand) Name() string { return "visualize" }

func (c *visualizeCommand) Run(ctx context.Context, out io.Writer) error {
	if err := c.browser.ToFile(ctx, c.automaton, "Finite Automaton", c.path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Graph saved to %s\n", c.path)
	return nil
}

// benchmarkCommand measures sampling throughput with a pool of workers,
// each owning its own sampler
type benchmarkCommand struct {
	grammar     *grammar.Grammar
	count       int
	concurrency int
	seed        int64
	maxDepth    int
}

func (c *benchmarkCommand) Name() string { return "benchmark" }

func (c *benchmarkCommand) Run(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	base := c.seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	var wg sync.WaitGroup
	errs := make(chan error, c.concurrency)
	start := time.Now()

	// Start worker pool
	for i := 0; i < c.concurrency; i++ {
		n := c.count / c.concurrency
		if i < c.count%c.concurrency {
			n++
		}
		if n == 0 {
			continue
		}

		sampler := grammar.NewSampler(c.grammar, rand.New(rand.NewSource(base+int64(i))))
		sampler.MaxDepth = c.maxDepth

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.worker(ctx, sampler, n); err != nil {
				errs <- err
				cancel()
			}
		}()
	}

	// Wait for all workers to complete
	wg.Wait()
	elapsed := time.Since(start)
	close(errs)

	if err := <-errs; err != nil {
		return err
	}

	rate := float64(c.count)
	if seconds := elapsed.Seconds(); seconds > 0 {
		rate /= seconds
	}
	fmt.Fprintf(out, "Generated %d strings in %.2fs (%.1f per second)\n", c.count, elapsed.Seconds(), rate)
	return nil
}

func (c *benchmarkCommand) worker(ctx context.Context, sampler *grammar.Sampler, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := sampler.Sample(); err != nil {
			return err
		}
	}
	return nil
}
