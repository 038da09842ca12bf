package grammar

import (
	"fmt"
	"strings"
)

// MalformedGrammarError is returned when a grammar definition violates the
// structure of a right-linear grammar
type MalformedGrammarError struct {
	Path   string // Source file, empty for in-memory definitions
	Reason string
}

func (e *MalformedGrammarError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed grammar %s: %s", e.Path, e.Reason)
	}
	return "malformed grammar: " + e.Reason
}

func malformed(format string, args ...interface{}) *MalformedGrammarError {
	return &MalformedGrammarError{Reason: fmt.Sprintf(format, args...)}
}

// NoProductionError is returned by sampling when it reaches a non-terminal
// without rules
type NoProductionError struct {
	Symbol Symbol
}

func (e *NoProductionError) Error() string {
	return fmt.Sprintf("no productions for state %c", e.Symbol)
}

// DepthExceededError is returned when a derivation needs more expansions than
// the sampler allows
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("derivation exceeded %d expansions", e.Limit)
}

// ConflictError reports rules that map the same state and terminal to
// different targets
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return "conflicting transitions: " + strings.Join(parts, "; ")
}
