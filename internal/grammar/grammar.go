package grammar

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"regularfa/internal/automaton"
)

// Symbol is a single grammar character, either a terminal or a non-terminal
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// State returns the automaton state named after s
func (s Symbol) State() automaton.State {
	return automaton.State(s.String())
}

// Rule is a validated right-linear production: From -> Terminal [Next]
type Rule struct {
	From     Symbol
	Terminal Symbol
	Next     Symbol // Only meaningful when HasNext is set
	HasNext  bool
}

// Expansion returns the right-hand side as written in the definition
func (r Rule) Expansion() string {
	if r.HasNext {
		return r.Terminal.String() + r.Next.String()
	}
	return r.Terminal.String()
}

func (r Rule) String() string {
	return expansionKey(r.From, r.Expansion())
}

// target returns the automaton state the rule leads to
func (r Rule) target() automaton.State {
	if r.HasNext {
		return r.Next.State()
	}
	return automaton.Final
}

// Conflict records two rules with the same source and terminal but
// different targets. The later rule wins when the automaton is built.
type Conflict struct {
	Overwritten Rule
	Winner      Rule
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s overwritten by %s", c.Overwritten, c.Winner)
}

// Grammar is a validated right-linear grammar. It is read-only after New and
// may be shared between goroutines.
type Grammar struct {
	nonTerminals []Symbol
	terminals    []Symbol
	start        Symbol
	rules        []Rule

	isNonTerminal map[Symbol]bool
	isTerminal    map[Symbol]bool
	productions   map[Symbol][]Rule
	conflicts     []Conflict
}

// Load reads and validates the grammar definition at path
func Load(path string) (*Grammar, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}

	g, err := New(def)
	if err != nil {
		var me *MalformedGrammarError
		if errors.As(err, &me) {
			me.Path = path
		}
		return nil, err
	}
	return g, nil
}

// New validates def and builds a Grammar from it
func New(def *Definition) (*Grammar, error) {
	if def == nil {
		return nil, malformed("definition is missing")
	}

	g := &Grammar{
		isNonTerminal: make(map[Symbol]bool),
		isTerminal:    make(map[Symbol]bool),
		productions:   make(map[Symbol][]Rule),
	}

	for _, s := range def.NonTerminals {
		sym, err := parseSymbol(s, "non-terminal")
		if err != nil {
			return nil, err
		}
		if !g.isNonTerminal[sym] {
			g.isNonTerminal[sym] = true
			g.nonTerminals = append(g.nonTerminals, sym)
		}
	}
	for _, s := range def.Terminals {
		sym, err := parseSymbol(s, "terminal")
		if err != nil {
			return nil, err
		}
		if g.isNonTerminal[sym] {
			return nil, malformed("symbol %q is both a terminal and a non-terminal", s)
		}
		if !g.isTerminal[sym] {
			g.isTerminal[sym] = true
			g.terminals = append(g.terminals, sym)
		}
	}

	start, err := parseSymbol(def.Start, "start")
	if err != nil {
		return nil, err
	}
	if !g.isNonTerminal[start] {
		return nil, malformed("start symbol %q is not a declared non-terminal", def.Start)
	}
	g.start = start

	seen := make(map[automaton.Key]Rule)
	for i, rd := range def.Rules {
		rule, err := g.parseRule(rd)
		if err != nil {
			return nil, malformed("rule %d (%s -> %s): %s", i, rd.From, rd.To, err.Reason)
		}
		g.rules = append(g.rules, rule)
		g.productions[rule.From] = append(g.productions[rule.From], rule)

		key := automaton.Key{From: rule.From.State(), Symbol: rune(rule.Terminal)}
		if prev, ok := seen[key]; ok && prev.target() != rule.target() {
			g.conflicts = append(g.conflicts, Conflict{Overwritten: prev, Winner: rule})
		}
		seen[key] = rule
	}

	return g, nil
}

func parseSymbol(s, kind string) (Symbol, *MalformedGrammarError) {
	if !utf8.ValidString(s) {
		return 0, malformed("%s %q is not valid UTF-8", kind, s)
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, malformed("%s %q must be exactly one character", kind, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if automaton.State(s) == automaton.Final {
		return 0, malformed("%s %q collides with the virtual final state", kind, s)
	}
	return Symbol(r), nil
}

func (g *Grammar) parseRule(rd RuleDefinition) (Rule, *MalformedGrammarError) {
	from, err := parseSymbol(rd.From, "source")
	if err != nil {
		return Rule{}, err
	}
	if !g.isNonTerminal[from] {
		return Rule{}, malformed("source %q is not a declared non-terminal", rd.From)
	}

	if !utf8.ValidString(rd.To) {
		return Rule{}, malformed("right-hand side %q is not valid UTF-8", rd.To)
	}
	rhs := []rune(rd.To)
	if len(rhs) != 1 && len(rhs) != 2 {
		return Rule{}, malformed("right-hand side must have 1 or 2 symbols, got %d", len(rhs))
	}

	rule := Rule{From: from, Terminal: Symbol(rhs[0])}
	if g.isNonTerminal[rule.Terminal] {
		return Rule{}, malformed("right-hand side must start with a terminal, got non-terminal %q", string(rhs[0]))
	}
	if !g.isTerminal[rule.Terminal] {
		return Rule{}, malformed("symbol %q is not a declared terminal", string(rhs[0]))
	}
	if len(rhs) == 2 {
		rule.Next = Symbol(rhs[1])
		rule.HasNext = true
		if !g.isNonTerminal[rule.Next] {
			return Rule{}, malformed("symbol %q is not a declared non-terminal", string(rhs[1]))
		}
	}
	return rule, nil
}

// Start returns the start symbol
func (g *Grammar) Start() Symbol {
	return g.start
}

// NonTerminals returns the declared non-terminals in declaration order
func (g *Grammar) NonTerminals() []Symbol {
	return append([]Symbol(nil), g.nonTerminals...)
}

// Terminals returns the declared terminals in declaration order
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// Rules returns all rules in definition order
func (g *Grammar) Rules() []Rule {
	return append([]Rule(nil), g.rules...)
}

// Productions returns the rules whose source is s
func (g *Grammar) Productions(s Symbol) []Rule {
	return append([]Rule(nil), g.productions[s]...)
}

// IsTerminal returns true if s is a declared terminal
func (g *Grammar) IsTerminal(s Symbol) bool {
	return g.isTerminal[s]
}

// IsNonTerminal returns true if s is a declared non-terminal
func (g *Grammar) IsNonTerminal(s Symbol) bool {
	return g.isNonTerminal[s]
}

// Conflicts returns the rules that overwrite an earlier transition
func (g *Grammar) Conflicts() []Conflict {
	return append([]Conflict(nil), g.conflicts...)
}

// BuildAutomaton converts the grammar into a deterministic automaton. Each
// rule A -> aB becomes (A, a) -> B and each rule A -> a becomes (A, a) -> Ω.
// When two rules share a source and terminal the later one wins; see
// Conflicts.
func (g *Grammar) BuildAutomaton() *automaton.Automaton {
	states := make([]automaton.State, 0, len(g.nonTerminals)+1)
	for _, s := range g.nonTerminals {
		states = append(states, s.State())
	}
	states = append(states, automaton.Final)

	transitions := make(map[automaton.Key]automaton.State, len(g.rules))
	for _, r := range g.rules {
		key := automaton.Key{From: r.From.State(), Symbol: rune(r.Terminal)}
		transitions[key] = r.target()
	}

	return automaton.New(
		states,
		transitions,
		g.start.State(),
		[]automaton.State{automaton.Final},
	)
}
