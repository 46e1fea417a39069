package loader

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// DefaultIgnore lists the globs skipped when the configuration names none.
var DefaultIgnore = []string{
	"**/*.spec.ts",
	"**/*.test.ts",
	"**/node_modules/**",
	"**/dist/**",
	"**/.git/**",
}

// IgnoreMatcher matches record paths against compiled ignore globs.
type IgnoreMatcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewIgnoreMatcher compiles patterns with "/" as the separator.
func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{patterns: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Patterns returns the source patterns.
func (m *IgnoreMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}

// Match reports whether path is ignored. A nil matcher ignores nothing.
func (m *IgnoreMatcher) Match(path string) bool {
	if m == nil {
		return false
	}
	path = core.NormalizePath(path)
	for _, g := range m.globs {
		// "**/x" patterns also apply at the root
		if g.Match(path) || g.Match("/"+path) {
			return true
		}
	}
	return false
}
