// Package category holds the per-wiki tables that map a page's category label
// to a normalization strategy.
package category

import (
	"fmt"
	"sort"

	"github.com/amishk599/hoyotext/internal/model"
)

// Strategy is the normalization applied to a page of a given category.
type Strategy string

const (
	// Character normalizes every module and the character attributes.
	Character Strategy = "character"
	// Generic normalizes every module.
	Generic Strategy = "generic"
	// Bare keeps only the page description.
	Bare Strategy = "bare"
)

// ParseStrategy validates a strategy tag from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case Character, Generic, Bare:
		return st, nil
	default:
		return "", fmt.Errorf("unknown category strategy %q (want character, generic or bare)", s)
	}
}

// Entry is one row of a category table.
type Entry struct {
	Strategy Strategy
	Type     string // record type; empty means the label itself
}

// Table maps an exact, case-sensitive category label to its entry.
type Table map[string]Entry

// Lookup resolves label. ok is false for labels the table does not know.
func (t Table) Lookup(label string) (Entry, bool) {
	e, ok := t[label]
	if !ok {
		return Entry{}, false
	}
	if e.Type == "" {
		e.Type = label
	}
	return e, true
}

// Labels returns the table's labels sorted alphabetically.
func (t Table) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// AttributeKeys names the filter_values members that hold a character's
// scalar attributes on a given wiki.
type AttributeKeys struct {
	Path       string
	Faction    string
	Rarity     string
	CombatType string
}

// Family bundles everything the dispatcher needs to know about one wiki.
type Family struct {
	Categories Table
	Attributes AttributeKeys
}

// Registry holds the tables of every supported wiki.
type Registry struct {
	families map[model.GameFamily]Family
}

// NewRegistry builds a registry from explicit family definitions.
func NewRegistry(families map[model.GameFamily]Family) *Registry {
	return &Registry{families: families}
}

// Family returns the definition for f, or ErrUnknownGameFamily.
func (r *Registry) Family(f model.GameFamily) (Family, error) {
	fam, ok := r.families[f]
	if !ok {
		return Family{}, fmt.Errorf("category tables for %q: %w", f, model.ErrUnknownGameFamily)
	}
	return fam, nil
}

// Override adds or replaces labels in a family's table. A non-empty typ sets
// the record type for that label; an empty one keeps the label's current type.
func (r *Registry) Override(f model.GameFamily, label string, strategy Strategy, typ string) error {
	fam, err := r.Family(f)
	if err != nil {
		return err
	}
	if typ == "" {
		typ = fam.Categories[label].Type
	}
	fam.Categories[label] = Entry{Strategy: strategy, Type: typ}
	r.families[f] = fam
	return nil
}
