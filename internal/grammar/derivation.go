package grammar

import (
	"strings"
)

// DerivationTree represents a node in the derivation of a sampled string
type DerivationTree struct {
	Symbol   Symbol            // The grammar symbol at this node
	Children []*DerivationTree // Child nodes, empty for terminals
	Rule     *Rule             // The rule used to expand this node, nil for terminals
}

// NewDerivationTree creates a new derivation tree node
func NewDerivationTree(symbol Symbol) *DerivationTree {
	return &DerivationTree{
		Symbol:   symbol,
		Children: make([]*DerivationTree, 0, 2),
	}
}

// AddChild adds a child node to this tree
func (t *DerivationTree) AddChild(child *DerivationTree) {
	t.Children = append(t.Children, child)
}

// String renders the tree as an s-expression, e.g. (S a (A c))
func (t *DerivationTree) String() string {
	if len(t.Children) == 0 {
		return t.Symbol.String()
	}

	parts := make([]string, 0, len(t.Children)+1)
	parts = append(parts, t.Symbol.String())
	for _, child := range t.Children {
		parts = append(parts, child.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Leaves returns the derived string
func (t *DerivationTree) Leaves() string {
	var b strings.Builder
	t.writeLeaves(&b)
	return b.String()
}

func (t *DerivationTree) writeLeaves(b *strings.Builder) {
	if len(t.Children) == 0 {
		b.WriteRune(rune(t.Symbol))
		return
	}
	for _, child := range t.Children {
		child.writeLeaves(b)
	}
}

// Rules returns the rules used in this tree, outermost first
func (t *DerivationTree) Rules() []Rule {
	var rules []Rule
	if t.Rule != nil {
		rules = append(rules, *t.Rule)
	}
	for _, child := range t.Children {
		rules = append(rules, child.Rules()...)
	}
	return rules
}

// Depth returns the maximum depth of the tree
func (t *DerivationTree) Depth() int {
	if len(t.Children) == 0 {
		return 0
	}

	maxChildDepth := 0
	for _, child := range t.Children {
		if d := child.Depth(); d > maxChildDepth {
			maxChildDepth = d
		}
	}
	return maxChildDepth + 1
}
