package grammar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailru/easyjson"
	"gopkg.in/yaml.v3"
)

// Definition is the raw grammar description as read from a config file.
// It is validated and converted to a Grammar by New.
type Definition struct {
	NonTerminals []string         `json:"non_terminals" yaml:"non_terminals"`
	Terminals    []string         `json:"terminals" yaml:"terminals"`
	Start        string           `json:"start" yaml:"start"`
	Rules        []RuleDefinition `json:"rules" yaml:"rules"`
}

// RuleDefinition is a single production as written in a config file
type RuleDefinition struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// LoadDefinition reads a grammar definition from path. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON.
func LoadDefinition(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar definition: %w", err)
	}

	def := &Definition{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, def)
	default:
		err = easyjson.Unmarshal(content, def)
	}
	if err != nil {
		return nil, &MalformedGrammarError{Path: path, Reason: fmt.Sprintf("cannot decode definition: %v", err)}
	}

	return def, nil
}
