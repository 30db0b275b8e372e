package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary maps each entry type to its ordered list of category names.
// It is a configuration table, not an enum: the engine accepts any category
// string, the vocabulary only drives the entry form.
type Vocabulary map[EntryType][]string

// DefaultVocabulary returns the built-in category table.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Income:  {"Salary", "Freelance", "Investment", "Gift", "Other"},
		Expense: {"Food", "Transport", "Entertainment", "Bills", "Shopping", "Health", "Education", "Other"},
	}
}

// LoadVocabulary reads a category table from a YAML file shaped as:
//
//	income: [Salary, Freelance]
//	expense: [Food, Transport]
//
// Missing types fall back to the built-in lists.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var raw struct {
		Income  []string `yaml:"income"`
		Expense []string `yaml:"expense"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}

	v := DefaultVocabulary()
	if len(raw.Income) > 0 {
		v[Income] = raw.Income
	}
	if len(raw.Expense) > 0 {
		v[Expense] = raw.Expense
	}
	return v, nil
}

// For returns the category list for an entry type, in configured order.
func (v Vocabulary) For(t EntryType) []string {
	return v[t]
}
