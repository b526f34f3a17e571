// Package registry builds the per-run mapping between configured sensitive
// names and their placeholder tokens. The registry is immutable after Build
// and fully determined by the configuration: the same config always yields
// the same placeholder for the same name, which is what lets the anonymize
// and deanonymize paths agree without sharing state.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anonsum/anonsum/internal/config"
)

// Category classifies a registry entry.
type Category string

// Categories in their fixed assignment order.
const (
	CategoryOrganization Category = "organization"
	CategoryProject      Category = "project"
	CategoryPerson       Category = "person"
)

// Categories lists all categories in placeholder-assignment order.
var Categories = []Category{CategoryOrganization, CategoryProject, CategoryPerson}

// Prefix returns the category tag used inside placeholder tokens.
func (c Category) Prefix() string {
	switch c {
	case CategoryOrganization:
		return "ORG"
	case CategoryProject:
		return "PROJECT"
	case CategoryPerson:
		return "PERSON"
	}
	return ""
}

// Validation errors returned by Build.
var (
	ErrEmptyName     = errors.New("empty name")
	ErrDuplicateName = errors.New("duplicate name")
)

// Entry maps one canonical name to its placeholder token.
type Entry struct {
	Category    Category
	Name        string
	Placeholder string
}

// Registry is the ordered, immutable set of entries for one run.
type Registry struct {
	entries       []Entry
	byPlaceholder map[string]Entry
}

// Build constructs a registry from the configured name lists. Placeholders
// are assigned per category in configuration order: [ORG_1], [ORG_2], ...,
// [PROJECT_1], ..., [PERSON_1], ... Names are trimmed of surrounding
// whitespace; an empty name or a case-insensitive duplicate within a
// category fails the build. The same name may appear in two categories and
// receives a distinct placeholder in each.
func Build(cfg config.AnonymizeConfig) (*Registry, error) {
	groups := []struct {
		category Category
		names    []string
	}{
		{CategoryOrganization, cfg.Organizations},
		{CategoryProject, cfg.Projects},
		{CategoryPerson, cfg.People},
	}

	reg := &Registry{
		byPlaceholder: make(map[string]Entry),
	}

	for _, group := range groups {
		seen := make(map[string]struct{}, len(group.names))
		for i, raw := range group.names {
			name := strings.TrimSpace(raw)
			if name == "" {
				return nil, fmt.Errorf("%s entry %d: %w", group.category, i+1, ErrEmptyName)
			}

			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%s %q: %w", group.category, name, ErrDuplicateName)
			}
			seen[key] = struct{}{}

			entry := Entry{
				Category:    group.category,
				Name:        name,
				Placeholder: fmt.Sprintf("[%s_%d]", group.category.Prefix(), i+1),
			}
			reg.entries = append(reg.entries, entry)
			reg.byPlaceholder[entry.Placeholder] = entry
		}
	}

	return reg, nil
}

// Entries returns the entries in assignment order (category, then
// configuration order). The returned slice is a copy.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup resolves a placeholder token back to its entry.
func (r *Registry) Lookup(placeholder string) (Entry, bool) {
	entry, ok := r.byPlaceholder[placeholder]
	return entry, ok
}

// Len returns the total number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// CountByCategory returns the number of entries per category.
func (r *Registry) CountByCategory() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, entry := range r.entries {
		counts[entry.Category]++
	}
	return counts
}
