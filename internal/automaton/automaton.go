package automaton

import (
	"sort"
)

// State is a node of the automaton: a grammar non-terminal or Final
type State string

const (
	// Final is the virtual accepting state reached after the last terminal
	Final State = "Ω"

	// Rejected marks the point of the first undefined transition in a path.
	// It is never a state of any automaton.
	Rejected State = "REJECTED"
)

// Key identifies a transition by its source state and input symbol
type Key struct {
	From   State
	Symbol rune
}

// Transition is a single edge of the automaton
type Transition struct {
	From   State
	Symbol rune
	To     State
}

// Automaton is a deterministic finite automaton over single-character symbols.
// It is immutable after New and safe for concurrent use.
type Automaton struct {
	states      map[State]bool
	transitions map[Key]State
	start       State
	accepting   map[State]bool
}

// New creates an automaton. The arguments are copied.
func New(states []State, transitions map[Key]State, start State, accepting []State) *Automaton {
	a := &Automaton{
		states:      make(map[State]bool, len(states)),
		transitions: make(map[Key]State, len(transitions)),
		start:       start,
		accepting:   make(map[State]bool, len(accepting)),
	}
	for _, s := range states {
		a.states[s] = true
	}
	for k, to := range transitions {
		a.transitions[k] = to
	}
	for _, s := range accepting {
		a.accepting[s] = true
	}
	return a
}

// Accepts reports whether the automaton accepts input
func (a *Automaton) Accepts(input string) bool {
	current := a.start
	for _, symbol := range input {
		next, ok := a.transitions[Key{current, symbol}]
		if !ok {
			return false
		}
		current = next
	}
	return a.accepting[current]
}

// AcceptsWithPath walks input like Accepts and also returns every visited
// state, starting with the start state. If a transition is missing the walk
// stops and the path ends with Rejected.
func (a *Automaton) AcceptsWithPath(input string) (bool, []State) {
	path := []State{a.start}
	current := a.start
	for _, symbol := range input {
		next, ok := a.transitions[Key{current, symbol}]
		if !ok {
			return false, append(path, Rejected)
		}
		current = next
		path = append(path, current)
	}
	return a.accepting[current], path
}

// Start returns the start state
func (a *Automaton) Start() State {
	return a.start
}

// Next returns the target of the transition from s on symbol
func (a *Automaton) Next(s State, symbol rune) (State, bool) {
	to, ok := a.transitions[Key{s, symbol}]
	return to, ok
}

// IsAccepting returns true if s is an accepting state
func (a *Automaton) IsAccepting(s State) bool {
	return a.accepting[s]
}

// States returns all states sorted, with accepting states last
func (a *Automaton) States() []State {
	return sortStates(a.states, a.accepting)
}

// Accepting returns the accepting states in sorted order
func (a *Automaton) Accepting() []State {
	return sortStates(a.accepting, nil)
}

// Transitions returns every transition ordered by source state then symbol
func (a *Automaton) Transitions() []Transition {
	order := make(map[State]int)
	for i, s := range a.States() {
		order[s] = i
	}

	result := make([]Transition, 0, len(a.transitions))
	for k, to := range a.transitions {
		result = append(result, Transition{From: k.From, Symbol: k.Symbol, To: to})
	}
	sort.Slice(result, func(i, j int) bool {
		oi, oj := order[result[i].From], order[result[j].From]
		if oi != oj {
			return oi < oj
		}
		return result[i].Symbol < result[j].Symbol
	})
	return result
}

// Alphabet returns the symbols used by at least one transition, sorted
func (a *Automaton) Alphabet() []rune {
	seen := make(map[rune]bool)
	var symbols []rune
	for k := range a.transitions {
		if !seen[k.Symbol] {
			seen[k.Symbol] = true
			symbols = append(symbols, k.Symbol)
		}
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Equal reports whether both automata have the same states, transitions,
// start state and accepting states
func (a *Automaton) Equal(other *Automaton) bool {
	if other == nil || a.start != other.start {
		return false
	}
	if len(a.states) != len(other.states) ||
		len(a.transitions) != len(other.transitions) ||
		len(a.accepting) != len(other.accepting) {
		return false
	}
	for s := range a.states {
		if !other.states[s] {
			return false
		}
	}
	for s := range a.accepting {
		if !other.accepting[s] {
			return false
		}
	}
	for k, to := range a.transitions {
		if got, ok := other.transitions[k]; !ok || got != to {
			return false
		}
	}
	return true
}

func sortStates(set map[State]bool, last map[State]bool) []State {
	result := make([]State, 0, len(set))
	for s := range set {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		li, lj := last[result[i]], last[result[j]]
		if li != lj {
			return lj
		}
		return result[i] < result[j]
	})
	return result
}
