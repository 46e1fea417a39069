package core

import "strings"

// =============================================================================
// Project model
// =============================================================================

// ChangeDetection is a component's change-detection strategy.
type ChangeDetection string

// Change-detection strategies.
const (
	ChangeDetectionDefault ChangeDetection = "Default"
	ChangeDetectionOnPush  ChangeDetection = "OnPush"
)

// LifecycleHooks lists the recognized framework callback method names.
var LifecycleHooks = []string{
	"ngOnChanges",
	"ngOnInit",
	"ngDoCheck",
	"ngAfterContentInit",
	"ngAfterContentChecked",
	"ngAfterViewInit",
	"ngAfterViewChecked",
	"ngOnDestroy",
}

// IsLifecycleHook reports whether name is a recognized lifecycle hook.
func IsLifecycleHook(name string) bool {
	for _, h := range LifecycleHooks {
		if h == name {
			return true
		}
	}
	return false
}

// Constructor is the member name of a class constructor.
const Constructor = "constructor"

// Project is the assembled model of one analyzed code base.
// It is built once per run and must not be mutated afterwards.
type Project struct {
	RootPath   string       `json:"root_path"`
	Components []*Component `json:"components"`
	Services   []*Service   `json:"services"`
	Modules    []*Module    `json:"modules"`
	Directives []*Directive `json:"directives,omitempty"`
	Pipes      []*Pipe      `json:"pipes,omitempty"`
	// Files holds the import facts of every analyzed file, sorted by path.
	Files []*SourceFile `json:"-"`
}

// SourceFile is one analyzed file with its import and export declarations.
type SourceFile struct {
	Path    string
	Imports []Import
	Exports []string
}

// Injection is a constructor-injected dependency.
type Injection struct {
	Param string `json:"param"`
	Type  string `json:"type"`
}

// Method is a class method with its body facts.
type Method struct {
	Name           string   `json:"name"`
	Public         bool     `json:"public"`
	Line           int      `json:"line,omitempty"`
	Branches       int      `json:"branches,omitempty"`
	Calls          []string `json:"calls,omitempty"`
	MemberAccesses []string `json:"member_accesses,omitempty"`
	// Called is set for service methods referenced by another entity.
	Called bool `json:"called,omitempty"`
}

// References reports whether any call or member access in the method body
// goes through param, e.g. "this.http.get" or "http.get" for param "http".
func (m Method) References(param string) bool {
	for _, refs := range [][]string{m.MemberAccesses, m.Calls} {
		for _, ref := range refs {
			head, _, _ := strings.Cut(strings.TrimPrefix(ref, "this."), ".")
			if i := strings.IndexAny(head, "(?!"); i >= 0 {
				head = head[:i]
			}
			if head == param {
				return true
			}
		}
	}
	return false
}

// Field is a state-holding class property.
type Field struct {
	Name     string `json:"name"`
	Readonly bool   `json:"readonly,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Component is a UI component.
type Component struct {
	Name            string          `json:"name"`
	FilePath        string          `json:"file_path"`
	Line            int             `json:"line,omitempty"`
	Selector        string          `json:"selector,omitempty"`
	Template        *string         `json:"template,omitempty"`
	TemplateURL     *string         `json:"template_url,omitempty"`
	StyleURLs       []string        `json:"style_urls,omitempty"`
	Inputs          []string        `json:"inputs,omitempty"`
	Outputs         []string        `json:"outputs,omitempty"`
	LifecycleHooks  []string        `json:"lifecycle_hooks,omitempty"`
	Dependencies    []string        `json:"dependencies,omitempty"`
	Injections      []Injection     `json:"injections,omitempty"`
	Methods         []Method        `json:"methods,omitempty"`
	Fields          []Field         `json:"fields,omitempty"`
	ChangeDetection ChangeDetection `json:"change_detection"`
	ComplexityScore int             `json:"complexity_score"`
}

// Implements reports whether the component implements the lifecycle hook.
func (c *Component) Implements(hook string) bool {
	for _, h := range c.LifecycleHooks {
		if h == hook {
			return true
		}
	}
	return false
}

// MutableFields returns the fields that are not readonly.
func (c *Component) MutableFields() []Field {
	return mutable(c.Fields)
}

// Service is an injectable service.
type Service struct {
	Name         string      `json:"name"`
	FilePath     string      `json:"file_path"`
	Line         int         `json:"line,omitempty"`
	ProvidedIn   string      `json:"provided_in,omitempty"`
	Injectable   bool        `json:"injectable"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Injections   []Injection `json:"injections,omitempty"`
	Methods      []Method    `json:"methods,omitempty"`
	Fields       []Field     `json:"fields,omitempty"`
}

// MutableFields returns the fields that are not readonly.
func (s *Service) MutableFields() []Field {
	return mutable(s.Fields)
}

// Module groups declarations.
type Module struct {
	Name         string   `json:"name"`
	FilePath     string   `json:"file_path"`
	Line         int      `json:"line,omitempty"`
	Declarations []string `json:"declarations,omitempty"`
	Imports      []string `json:"imports,omitempty"`
	Exports      []string `json:"exports,omitempty"`
	Providers    []string `json:"providers,omitempty"`
	Bootstrap    []string `json:"bootstrap,omitempty"`
}

// IsRoot reports whether the module bootstraps the application.
func (m *Module) IsRoot() bool {
	return len(m.Bootstrap) > 0
}

// Directive is an attribute or structural directive.
type Directive struct {
	Name         string      `json:"name"`
	FilePath     string      `json:"file_path"`
	Line         int         `json:"line,omitempty"`
	Selector     string      `json:"selector,omitempty"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Injections   []Injection `json:"injections,omitempty"`
	Methods      []Method    `json:"methods,omitempty"`
}

// Pipe is a template transform.
type Pipe struct {
	Name         string      `json:"name"`
	FilePath     string      `json:"file_path"`
	Line         int         `json:"line,omitempty"`
	PipeName     string      `json:"pipe_name,omitempty"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Injections   []Injection `json:"injections,omitempty"`
	Methods      []Method    `json:"methods,omitempty"`
}

// Component returns the component with the given class name, or nil.
func (p *Project) Component(name string) *Component {
	for _, c := range p.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Service returns the service with the given class name, or nil.
func (p *Project) Service(name string) *Service {
	for _, s := range p.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Module returns the module with the given class name, or nil.
func (p *Project) Module(name string) *Module {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// HasFile reports whether any entity of the project lives in path.
func (p *Project) HasFile(path string) bool {
	for _, c := range p.Components {
		if c.FilePath == path {
			return true
		}
	}
	for _, s := range p.Services {
		if s.FilePath == path {
			return true
		}
	}
	for _, m := range p.Modules {
		if m.FilePath == path {
			return true
		}
	}
	for _, d := range p.Directives {
		if d.FilePath == path {
			return true
		}
	}
	for _, pp := range p.Pipes {
		if pp.FilePath == path {
			return true
		}
	}
	return false
}

func mutable(fields []Field) []Field {
	var out []Field
	for _, f := range fields {
		if !f.Readonly {
			out = append(out, f)
		}
	}
	return out
}
