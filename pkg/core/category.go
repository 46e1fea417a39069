package core

import (
	"fmt"
	"strings"
)

// Category groups rules into independently runnable analyzers.
type Category int

// Rule categories in their fixed evaluation order.
const (
	CategoryComponent Category = iota
	CategoryDependency
	CategoryState
	CategoryPerformance
)

var categoryNames = [...]string{
	CategoryComponent:   "component",
	CategoryDependency:  "dependency",
	CategoryState:       "state",
	CategoryPerformance: "performance",
}

// AllCategories returns every category in evaluation order.
func AllCategories() []Category {
	return []Category{CategoryComponent, CategoryDependency, CategoryState, CategoryPerformance}
}

// String returns the lowercase category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a category name. Unknown names wrap ErrUnknownCategory.
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range categoryNames {
		if candidate == n {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Priority ranks recommendations. Lower values come first.
type Priority int

// Recommendation priorities.
const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityHigh || p > PriorityLow {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}
