package testutil

import "github.com/leapstack-labs/ngaudit/pkg/core"

// Args is shorthand for decorator arguments.
type Args = map[string]any

// ComponentRecord returns a record decorated with @Component.
func ComponentRecord(path, class string, args Args, members ...core.ClassMember) core.FileRecord {
	return classRecord(path, class, core.KindComponent, "Component", args, members)
}

// ServiceRecord returns a record decorated with @Injectable.
func ServiceRecord(path, class string, members ...core.ClassMember) core.FileRecord {
	return classRecord(path, class, core.KindService, "Injectable", Args{"providedIn": "root"}, members)
}

// ModuleRecord returns a record decorated with @NgModule.
func ModuleRecord(path, class string, args Args) core.FileRecord {
	return classRecord(path, class, core.KindModule, "NgModule", args, nil)
}

func classRecord(path, class string, kind core.RecordKind, decorator string, args Args, members []core.ClassMember) core.FileRecord {
	return core.FileRecord{
		Path:         path,
		Kind:         kind,
		ClassName:    class,
		Line:         1,
		Decorators:   []core.Decorator{{Name: decorator, Args: args}},
		ClassMembers: members,
	}
}

// Ctor returns a constructor member injecting the given parameters.
// Pairs are name, type.
func Ctor(pairs ...string) core.ClassMember {
	m := core.ClassMember{Name: core.Constructor, MemberKind: core.MemberMethod}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Parameters = append(m.Parameters, core.Parameter{Name: pairs[i], Type: pairs[i+1]})
	}
	return m
}

// Method returns a method member with the given body facts.
func Method(name string, body *core.MethodBody, modifiers ...string) core.ClassMember {
	return core.ClassMember{Name: name, MemberKind: core.MemberMethod, Body: body, Modifiers: modifiers}
}

// Input returns an @Input property.
func Input(name string) core.ClassMember {
	return core.ClassMember{Name: name, MemberKind: core.MemberProperty, Annotations: []string{"Input"}}
}

// Output returns an @Output property.
func Output(name string) core.ClassMember {
	return core.ClassMember{Name: name, MemberKind: core.MemberProperty, Annotations: []string{"Output"}}
}

// Field returns a plain property.
func Field(name string, modifiers ...string) core.ClassMember {
	return core.ClassMember{Name: name, MemberKind: core.MemberProperty, Modifiers: modifiers}
}

// Branches returns a method body with n branching constructs.
func Branches(n int) *core.MethodBody {
	return &core.MethodBody{Branches: n}
}

// Calls returns a method body with the given calls.
func Calls(calls ...string) *core.MethodBody {
	return &core.MethodBody{Calls: calls}
}

// Accesses returns a method body with the given member accesses.
func Accesses(accesses ...string) *core.MethodBody {
	return &core.MethodBody{MemberAccesses: accesses}
}

// FooRecords returns a single component Foo that scores 13: no template,
// Default change detection, two lifecycle hooks, four public methods and six
// branches.
func FooRecords() []core.FileRecord {
	return []core.FileRecord{
		ComponentRecord("src/app/foo/foo.component.ts", "FooComponent", Args{"selector": "app-foo"},
			Method("ngOnInit", Branches(2)),
			Method("ngOnDestroy", nil),
			Method("load", Branches(1)),
			Method("save", Branches(1)),
			Method("reset", Branches(1)),
			Method("render", Branches(1)),
		),
	}
}
