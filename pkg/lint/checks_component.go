package lint

import (
	"unicode/utf8"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func checkComplexity(ctx *Context, p *ComplexityParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.ComplexityScore > p.MaxComplexity {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s has complexity score %d, exceeding the maximum of %d",
				c.Name, c.ComplexityScore, p.MaxComplexity))
		}
	}
	return out
}

func checkChangeDetection(ctx *Context) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.ChangeDetection != core.ChangeDetectionOnPush {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s uses Default change detection; consider ChangeDetectionStrategy.OnPush", c.Name))
		}
	}
	return out
}

func checkTooManyInputs(ctx *Context, p *InputsParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if len(c.Inputs) > p.MaxInputs {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s declares %d inputs (max %d)", c.Name, len(c.Inputs), p.MaxInputs))
		}
	}
	return out
}

func checkTooManyOutputs(ctx *Context, p *OutputsParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if len(c.Outputs) > p.MaxOutputs {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s declares %d outputs (max %d)", c.Name, len(c.Outputs), p.MaxOutputs))
		}
	}
	return out
}

func checkMissingCleanup(ctx *Context) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if !c.Implements("ngOnDestroy") && hasSubscription(c.Methods) {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s subscribes to resources but does not implement ngOnDestroy", c.Name))
		}
	}
	return out
}

func checkMissingTemplate(ctx *Context) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.Template == nil && c.TemplateURL == nil {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s has neither template nor templateUrl", c.Name))
		}
	}
	return out
}

func checkTemplateConflict(ctx *Context) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.Template != nil && c.TemplateURL != nil {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s sets both template and templateUrl", c.Name))
		}
	}
	return out
}

func checkInlineTemplateSize(ctx *Context, p *TemplateSizeParams) []core.Issue {
	var out []core.Issue
	for _, c := range ctx.Project.Components {
		if c.Template == nil {
			continue
		}
		if n := utf8.RuneCountInString(*c.Template); n > p.MaxChars {
			out = append(out, issue(c.FilePath, c.Line,
				"Component %s has an inline template of %d characters (max %d); move it to a templateUrl",
				c.Name, n, p.MaxChars))
		}
	}
	return out
}
