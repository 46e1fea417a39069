package builder

import (
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// decoratorKinds maps class decorators to the entity kind they mark.
var decoratorKinds = map[string]core.RecordKind{
	"Component":  core.KindComponent,
	"Injectable": core.KindService,
	"NgModule":   core.KindModule,
	"Directive":  core.KindDirective,
	"Pipe":       core.KindPipe,
}

// entity is the outcome of extracting one record. At most one of the entity
// pointers is set.
type entity struct {
	path      string
	name      string
	component *core.Component
	service   *core.Service
	module    *core.Module
	directive *core.Directive
	pipe      *core.Pipe
	file      *core.SourceFile
	warnings  []core.Warning
}

// classify determines the entity kind from decorators, falling back to the
// parser's kind hint.
func classify(rec core.FileRecord) (core.RecordKind, map[string]any) {
	for _, d := range rec.Decorators {
		if kind, ok := decoratorKinds[decoratorName(d.Name)]; ok {
			return kind, d.Args
		}
	}
	switch rec.Kind {
	case core.KindComponent, core.KindService, core.KindModule, core.KindDirective, core.KindPipe:
		return rec.Kind, nil
	default:
		return core.KindUnknown, nil
	}
}

// extract builds the entity described by rec. It touches no shared state and
// is safe to run concurrently.
func extract(rec core.FileRecord) entity {
	e := entity{path: core.NormalizePath(rec.Path), name: rec.ClassName}
	if e.path != "" {
		e.file = &core.SourceFile{Path: e.path, Imports: rec.Imports, Exports: rec.Exports}
	}

	kind, args := classify(rec)
	if kind == core.KindUnknown {
		return e
	}
	if strings.TrimSpace(rec.ClassName) == "" {
		e.warnings = append(e.warnings, core.ParseWarning(e.path, "%s record has no class name; skipped", kind))
		return e
	}

	x := &extractor{path: e.path, args: args}
	members := x.members(rec.ClassMembers)

	switch kind {
	case core.KindComponent:
		e.component = x.component(rec, members)
	case core.KindService:
		e.service = &core.Service{
			Name:         rec.ClassName,
			FilePath:     e.path,
			Line:         rec.Line,
			ProvidedIn:   x.str("providedIn"),
			Injectable:   hasDecorator(rec, "Injectable"),
			Dependencies: members.dependencies(),
			Injections:   members.injections,
			Methods:      members.methods,
			Fields:       members.fields,
		}
	case core.KindModule:
		e.module = &core.Module{
			Name:         rec.ClassName,
			FilePath:     e.path,
			Line:         rec.Line,
			Declarations: x.list("declarations"),
			Imports:      x.list("imports"),
			Exports:      x.list("exports"),
			Providers:    x.list("providers"),
			Bootstrap:    x.list("bootstrap"),
		}
	case core.KindDirective:
		e.directive = &core.Directive{
			Name:         rec.ClassName,
			FilePath:     e.path,
			Line:         rec.Line,
			Selector:     x.str("selector"),
			Dependencies: members.dependencies(),
			Injections:   members.injections,
			Methods:      members.methods,
		}
	case core.KindPipe:
		e.pipe = &core.Pipe{
			Name:         rec.ClassName,
			FilePath:     e.path,
			Line:         rec.Line,
			PipeName:     x.str("name"),
			Dependencies: members.dependencies(),
			Injections:   members.injections,
			Methods:      members.methods,
		}
	}

	e.warnings = append(e.warnings, x.warnings...)
	return e
}

// extractor reads decorator arguments for one record, collecting warnings for
// malformed values instead of failing.
type extractor struct {
	path     string
	args     map[string]any
	warnings []core.Warning
}

func (x *extractor) str(key string) string {
	v, _, err := argString(x.args, key)
	if err != nil {
		x.warnings = append(x.warnings, core.ParseWarning(x.path, "%v", err))
	}
	return v
}

func (x *extractor) optional(key string) *string {
	v, ok, err := argString(x.args, key)
	if err != nil {
		x.warnings = append(x.warnings, core.ParseWarning(x.path, "%v", err))
		return nil
	}
	if !ok {
		return nil
	}
	return &v
}

func (x *extractor) list(key string) []string {
	v, err := argStrings(x.args, key)
	if err != nil {
		x.warnings = append(x.warnings, core.ParseWarning(x.path, "%v", err))
	}
	return dedupe(v)
}

// memberFacts is what the class body contributes to any entity kind.
type memberFacts struct {
	injections []core.Injection
	methods    []core.Method
	fields     []core.Field
	inputs     []string
	outputs    []string
	hooks      []string
}

func (m memberFacts) dependencies() []string {
	deps := make([]string, 0, len(m.injections))
	for _, inj := range m.injections {
		deps = append(deps, inj.Type)
	}
	return dedupe(deps)
}

func (x *extractor) members(members []core.ClassMember) memberFacts {
	var facts memberFacts
	for _, m := range members {
		switch {
		case m.MemberKind == core.MemberMethod || m.Name == core.Constructor:
			if m.Name == core.Constructor {
				for _, p := range m.Parameters {
					if p.Type == "" {
						x.warnings = append(x.warnings, core.ParseWarning(x.path, "constructor parameter %q has no type", p.Name))
						continue
					}
					facts.injections = append(facts.injections, core.Injection{Param: p.Name, Type: p.Type})
				}
			}
			if core.IsLifecycleHook(m.Name) {
				facts.hooks = append(facts.hooks, m.Name)
			}
			method := toMethod(m)
			if method.Branches < 0 {
				x.warnings = append(x.warnings, core.ParseWarning(x.path, "method %q has negative branch count", m.Name))
				method.Branches = 0
			}
			facts.methods = append(facts.methods, method)
		case m.MemberKind == core.MemberProperty:
			switch {
			case m.HasAnnotation("Input") || m.HasModifier("input"):
				facts.inputs = append(facts.inputs, m.Name)
			case m.HasAnnotation("Output") || m.HasModifier("output"):
				facts.outputs = append(facts.outputs, m.Name)
			default:
				facts.fields = append(facts.fields, core.Field{
					Name:     m.Name,
					Readonly: m.HasModifier("readonly") || m.HasModifier("const"),
					Line:     m.Line,
				})
			}
		default:
			x.warnings = append(x.warnings, core.ParseWarning(x.path, "member %q has unknown kind %q", m.Name, m.MemberKind))
		}
	}
	facts.hooks = dedupe(facts.hooks)
	return facts
}

func (x *extractor) component(rec core.FileRecord, members memberFacts) *core.Component {
	c := &core.Component{
		Name:            rec.ClassName,
		FilePath:        x.path,
		Line:            rec.Line,
		Selector:        x.str("selector"),
		Template:        x.optional("template"),
		TemplateURL:     x.optional("templateUrl"),
		StyleURLs:       append(x.list("styleUrls"), x.list("styleUrl")...),
		Inputs:          dedupe(append(members.inputs, x.list("inputs")...)),
		Outputs:         dedupe(append(members.outputs, x.list("outputs")...)),
		LifecycleHooks:  members.hooks,
		Dependencies:    members.dependencies(),
		Injections:      members.injections,
		Methods:         members.methods,
		Fields:          members.fields,
		ChangeDetection: core.ChangeDetectionDefault,
	}
	if strings.HasSuffix(x.str("changeDetection"), "OnPush") {
		c.ChangeDetection = core.ChangeDetectionOnPush
	}
	return c
}

func toMethod(m core.ClassMember) core.Method {
	method := core.Method{
		Name:   m.Name,
		Public: m.Name != core.Constructor && !m.HasModifier("private") && !m.HasModifier("protected") && !strings.HasPrefix(m.Name, "#"),
		Line:   m.Line,
	}
	if m.Body != nil {
		method.Branches = m.Body.Branches
		method.Calls = m.Body.Calls
		method.MemberAccesses = m.Body.MemberAccesses
	}
	return method
}

func hasDecorator(rec core.FileRecord, name string) bool {
	for _, d := range rec.Decorators {
		if decoratorName(d.Name) == name {
			return true
		}
	}
	return false
}
