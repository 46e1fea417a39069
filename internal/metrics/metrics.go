// Package metrics computes derived numbers for project entities.
//
// Complexity is a pure function of the component model:
//
//	1 + lifecycle hooks + public methods + branches + template directives
//
// Every term is a non-negative count, so adding any element never lowers the
// score and an empty component scores exactly 1.
package metrics

import (
	"math"
	"regexp"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Baseline is the complexity of a component with no members.
const Baseline = 1

// templateDirectivePattern matches structural directives and control-flow blocks.
var templateDirectivePattern = regexp.MustCompile(
	`\*ng(?:If|For|SwitchCase|SwitchDefault)\b|\[ngSwitch\]|@(?:if|else|for|switch|case|defer)\b`,
)

// ComponentMetrics is the per-component breakdown behind the complexity score.
type ComponentMetrics struct {
	Name               string `json:"name"`
	FilePath           string `json:"file_path"`
	Complexity         int    `json:"complexity"`
	LifecycleHooks     int    `json:"lifecycle_hooks"`
	PublicMethods      int    `json:"public_methods"`
	Branches           int    `json:"branches"`
	TemplateDirectives int    `json:"template_directives"`
	Inputs             int    `json:"inputs"`
	Outputs            int    `json:"outputs"`
	Injections         int    `json:"injections"`
	MutableFields      int    `json:"mutable_fields"`
}

// Breakdown computes the metrics of a single component.
func Breakdown(c *core.Component) ComponentMetrics {
	m := ComponentMetrics{
		Name:           c.Name,
		FilePath:       c.FilePath,
		LifecycleHooks: len(c.LifecycleHooks),
		Inputs:         len(c.Inputs),
		Outputs:        len(c.Outputs),
		Injections:     len(c.Injections),
		MutableFields:  len(c.MutableFields()),
	}
	for _, method := range c.Methods {
		m.Branches += method.Branches
		if IsPublicMethod(method) {
			m.PublicMethods++
		}
	}
	if c.Template != nil {
		m.TemplateDirectives = CountTemplateDirectives(*c.Template)
	}
	m.Complexity = Baseline + m.LifecycleHooks + m.PublicMethods + m.Branches + m.TemplateDirectives
	return m
}

// Complexity returns the complexity score of a component.
func Complexity(c *core.Component) int {
	return Breakdown(c).Complexity
}

// IsPublicMethod reports whether a method counts toward the public surface.
// Constructors and lifecycle hooks are counted elsewhere or not at all.
func IsPublicMethod(m core.Method) bool {
	return m.Public && m.Name != core.Constructor && !core.IsLifecycleHook(m.Name)
}

// CountTemplateDirectives counts structural directives in template text.
func CountTemplateDirectives(template string) int {
	return len(templateDirectivePattern.FindAllStringIndex(template, -1))
}

// Score stores the complexity score on every component of p.
// It must run before the project is shared.
func Score(p *core.Project) {
	for _, c := range p.Components {
		c.ComplexityScore = Complexity(c)
	}
}

// Table returns the per-component breakdown in project order.
func Table(p *core.Project) []ComponentMetrics {
	out := make([]ComponentMetrics, 0, len(p.Components))
	for _, c := range p.Components {
		out = append(out, Breakdown(c))
	}
	return out
}

// Aggregate computes project-wide counts. Graph-derived fields are left zero.
func Aggregate(p *core.Project) core.ProjectMetrics {
	m := core.ProjectMetrics{
		TotalComponents: len(p.Components),
		TotalServices:   len(p.Services),
		TotalModules:    len(p.Modules),
		TotalDirectives: len(p.Directives),
		TotalPipes:      len(p.Pipes),
	}

	total := 0
	for _, c := range p.Components {
		total += c.ComplexityScore
		if c.ComplexityScore > m.MaxComplexity {
			m.MaxComplexity = c.ComplexityScore
		}
		if c.ChangeDetection == core.ChangeDetectionOnPush {
			m.OnPushComponents++
		} else {
			m.DefaultComponents++
		}
		m.TotalInputs += len(c.Inputs)
		m.TotalOutputs += len(c.Outputs)
	}
	if len(p.Components) > 0 {
		m.AverageComplexity = round2(float64(total) / float64(len(p.Components)))
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
