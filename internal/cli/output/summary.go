package output

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Summary writes a one-line run summary to the status output, e.g.
// "3 issues (1 error, 1 warning, 1 info), 3 shown, 0 warnings".
func (r *Renderer) Summary(s core.Summary) {
	counts := make([]string, 0, 3)
	for _, sev := range []core.Severity{core.SeverityError, core.SeverityWarning, core.SeverityInfo} {
		text := fmt.Sprintf("%d %s", s.BySeverity[sev], sev)
		counts = append(counts, r.styles.Severity(sev).Render(text))
	}

	noun := "issues"
	if s.TotalFound == 1 {
		noun = "issue"
	}
	head := r.styles.Bold.Render(fmt.Sprintf("%d %s", s.TotalFound, noun))
	line := fmt.Sprintf("%s (%s), %d shown, %s", head, strings.Join(counts, ", "), s.Shown,
		r.styles.Muted.Render(fmt.Sprintf("%d warnings", s.Warnings)))
	r.Status(line)
}
