package grammar

import (
	"sync"
)

// Coverage tracks which rules have been used by samplers. It is safe for
// concurrent use, so several samplers may share one tracker.
type Coverage struct {
	// Rules in definition order
	rules []Rule

	// Map of expansion keys to number of times the rule was chosen
	covered map[string]int

	// Protect concurrent access
	mu sync.RWMutex
}

// CoverageStats summarises a Coverage tracker
type CoverageStats struct {
	Total      int
	Covered    int
	Percentage float64
	Uncovered  []Rule
	BySymbol   map[Symbol]SymbolCoverage
}

// SymbolCoverage is the coverage of the rules of a single non-terminal
type SymbolCoverage struct {
	Total   int
	Covered int
}

// expansionKey creates a unique key for a symbol and its expansion
func expansionKey(symbol Symbol, expansion string) string {
	return symbol.String() + " -> " + expansion
}

// NewCoverage creates a coverage tracker for the rules of g
func NewCoverage(g *Grammar) *Coverage {
	return &Coverage{
		rules:   g.Rules(),
		covered: make(map[string]int),
	}
}

// Track records one use of rule
func (c *Coverage) Track(rule Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.covered[rule.String()]++
}

// TrackDerivationTree records every rule used in tree
func (c *Coverage) TrackDerivationTree(tree *DerivationTree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rule := range tree.Rules() {
		c.covered[rule.String()]++
	}
}

// Count returns how many times rule has been used
func (c *Coverage) Count(rule Rule) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.covered[rule.String()]
}

// HasFullCoverage checks if every rule has been used at least once
func (c *Coverage) HasFullCoverage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, rule := range c.rules {
		if c.covered[rule.String()] == 0 {
			return false
		}
	}
	return true
}

// Stats returns coverage statistics
func (c *Coverage) Stats() CoverageStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CoverageStats{BySymbol: make(map[Symbol]SymbolCoverage)}

	// Duplicate rules share a key, count each once
	seen := make(map[string]bool)
	for _, rule := range c.rules {
		key := rule.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		bs := stats.BySymbol[rule.From]
		bs.Total++
		stats.Total++
		if c.covered[key] > 0 {
			bs.Covered++
			stats.Covered++
		} else {
			stats.Uncovered = append(stats.Uncovered, rule)
		}
		stats.BySymbol[rule.From] = bs
	}

	if stats.Total > 0 {
		stats.Percentage = float64(stats.Covered) / float64(stats.Total) * 100
	}
	return stats
}

// Reset clears all coverage data
func (c *Coverage) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.covered = make(map[string]int)
}
