package analysis

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// FullAnalysis is the analyzer name that selects every category.
const FullAnalysis = "full"

// DefaultCategories run when no analyzer subset is requested.
var DefaultCategories = []core.Category{core.CategoryComponent}

// ResolveCategories turns analyzer names into categories in declaration
// order. Names may be comma-separated. An empty selection yields
// DefaultCategories; full selects all. Unknown names are configuration
// errors.
func ResolveCategories(names []string, full bool) ([]core.Category, error) {
	if full {
		return core.AllCategories(), nil
	}

	seen := make(map[core.Category]bool)
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if strings.EqualFold(name, FullAnalysis) {
				return core.AllCategories(), nil
			}
			cat, err := core.ParseCategory(name)
			if err != nil {
				return nil, core.NewConfigError("analyzers", err)
			}
			seen[cat] = true
		}
	}

	if len(seen) == 0 {
		return slices.Clone(DefaultCategories), nil
	}
	out := make([]core.Category, 0, len(seen))
	for _, cat := range core.AllCategories() {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	return out, nil
}
