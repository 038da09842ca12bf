package grammar

import (
	"math/rand"
	"strings"
	"time"
)

// Sampler derives random strings from a grammar. A Sampler owns its random
// source and must not be shared between goroutines; create one per worker.
type Sampler struct {
	grammar *Grammar
	rng     *rand.Rand

	// MaxDepth bounds the number of expansions per sample. Zero means no limit.
	MaxDepth int

	// Coverage, when set, records every rule the sampler chooses
	Coverage *Coverage
}

// NewSampler creates a sampler for g. A nil rng is replaced by a source
// seeded from the clock.
func NewSampler(g *Grammar, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{
		grammar: g,
		rng:     rng,
	}
}

// Sample derives one string using rng as the source of randomness
func (g *Grammar) Sample(rng *rand.Rand) (string, error) {
	return NewSampler(g, rng).Sample()
}

// Sample derives one string starting from the start symbol, picking each
// rule uniformly among the rules of the current non-terminal
func (s *Sampler) Sample() (string, error) {
	var b strings.Builder
	err := s.derive(func(rule Rule) {
		b.WriteRune(rune(rule.Terminal))
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// SampleTree derives one string like Sample and returns its derivation tree
func (s *Sampler) SampleTree() (*DerivationTree, error) {
	root := NewDerivationTree(s.grammar.start)
	node := root
	err := s.derive(func(rule Rule) {
		node.Rule = &rule
		node.AddChild(NewDerivationTree(rule.Terminal))
		if rule.HasNext {
			child := NewDerivationTree(rule.Next)
			node.AddChild(child)
			node = child
		}
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// derive walks one derivation and calls visit with every chosen rule.
// A right-linear derivation only ever has one pending non-terminal, so a
// loop replaces recursion.
func (s *Sampler) derive(visit func(Rule)) error {
	current := s.grammar.start
	for depth := 0; ; depth++ {
		if s.MaxDepth > 0 && depth >= s.MaxDepth {
			return &DepthExceededError{Limit: s.MaxDepth}
		}

		rules := s.grammar.productions[current]
		if len(rules) == 0 {
			return &NoProductionError{Symbol: current}
		}

		rule := rules[s.rng.Intn(len(rules))]
		if s.Coverage != nil {
			s.Coverage.Track(rule)
		}
		visit(rule)

		if !rule.HasNext {
			return nil
		}
		current = rule.Next
	}
}
