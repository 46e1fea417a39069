package core

import "strings"

// =============================================================================
// Parsed file records
// =============================================================================

// RecordKind is the kind hint supplied by the parser for a file.
type RecordKind string

// Record kinds.
const (
	KindComponent RecordKind = "component"
	KindService   RecordKind = "service"
	KindModule    RecordKind = "module"
	KindDirective RecordKind = "directive"
	KindPipe      RecordKind = "pipe"
	KindUnknown   RecordKind = "unknown"
)

// MemberKind distinguishes methods from properties.
type MemberKind string

// Member kinds.
const (
	MemberMethod   MemberKind = "method"
	MemberProperty MemberKind = "property"
)

// FileRecord is one parsed source file as produced by the parsing collaborator.
// The core depends only on this shape, never on raw source text.
type FileRecord struct {
	Path         string        `json:"path" yaml:"path"`
	Kind         RecordKind    `json:"kind" yaml:"kind"`
	ClassName    string        `json:"class_name,omitempty" yaml:"class_name"`
	Line         int           `json:"line,omitempty" yaml:"line"`
	Decorators   []Decorator   `json:"decorators,omitempty" yaml:"decorators"`
	ClassMembers []ClassMember `json:"class_members,omitempty" yaml:"class_members"`
	Imports      []Import      `json:"imports,omitempty" yaml:"imports"`
	// Exports lists the names the file exports.
	Exports []string `json:"exports,omitempty" yaml:"exports"`
}

// Decorator is a structural class annotation with its already-structured arguments.
type Decorator struct {
	Name string         `json:"name" yaml:"name"`
	Args map[string]any `json:"args,omitempty" yaml:"args"`
}

// ClassMember is a method or property of the record's class.
type ClassMember struct {
	Name        string      `json:"name" yaml:"name"`
	MemberKind  MemberKind  `json:"member_kind" yaml:"member_kind"`
	Annotations []string    `json:"annotations,omitempty" yaml:"annotations"`
	Modifiers   []string    `json:"modifiers,omitempty" yaml:"modifiers"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters"`
	Body        *MethodBody `json:"body,omitempty" yaml:"body"`
	Line        int         `json:"line,omitempty" yaml:"line"`
}

// Parameter is a constructor or method parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// MethodBody holds facts pre-extracted from a method body.
type MethodBody struct {
	// Branches counts if/else/switch/ternary/loop constructs.
	Branches int `json:"branches,omitempty" yaml:"branches"`
	// Calls lists called identifiers, e.g. "subscribe" or "this.cleanup".
	Calls []string `json:"calls,omitempty" yaml:"calls"`
	// MemberAccesses lists member-access expressions, e.g. "this.http".
	MemberAccesses []string `json:"member_accesses,omitempty" yaml:"member_accesses"`
}

// Import is a single import declaration.
type Import struct {
	Source     string   `json:"source" yaml:"source"`
	Specifiers []string `json:"specifiers,omitempty" yaml:"specifiers"`
}

// HasModifier reports whether the member carries the given modifier.
func (m ClassMember) HasModifier(name string) bool {
	for _, mod := range m.Modifiers {
		if mod == name {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether the member carries the given annotation.
// A leading "@" on either side is ignored.
func (m ClassMember) HasAnnotation(name string) bool {
	name = trimAt(name)
	for _, a := range m.Annotations {
		if trimAt(a) == name {
			return true
		}
	}
	return false
}

func trimAt(s string) string {
	if len(s) > 0 && s[0] == '@' {
		return s[1:]
	}
	return s
}

// NormalizePath converts a record path to forward-slash form regardless of
// platform and strips a leading "./".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
