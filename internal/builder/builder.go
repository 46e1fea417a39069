// Package builder assembles the project model from parsed file records.
//
// Records are extracted concurrently, each into a private slot, and then
// merged by a single goroutine in path order so that entity ordering does not
// depend on task completion order.
package builder

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/metrics"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Options configures a Builder.
type Options struct {
	// RootPath is recorded on the project as given, in forward-slash form.
	RootPath string
	// Workers bounds concurrent record extraction. Zero uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Result is the assembled project plus non-fatal parse warnings.
type Result struct {
	Project  *core.Project
	Warnings []core.Warning
}

// Builder turns file records into a Project.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Builder.
func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{opts: opts, logger: logger}
}

// Build extracts every record and assembles the project. Record order is not
// significant. Malformed records become warnings; only context cancellation
// returns an error.
func (b *Builder) Build(ctx context.Context, records []core.FileRecord) (*Result, error) {
	extracted := make([]entity, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			extracted[i] = extract(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := b.merge(extracted)
	markCalledServiceMethods(result.Project)
	metrics.Score(result.Project)

	b.logger.Info("project model built",
		"records", len(records),
		"components", len(result.Project.Components),
		"services", len(result.Project.Services),
		"modules", len(result.Project.Modules),
		"directives", len(result.Project.Directives),
		"pipes", len(result.Project.Pipes),
		"warnings", len(result.Warnings))

	return result, nil
}

// merge aggregates extracted entities in (path, class name) order.
func (b *Builder) merge(extracted []entity) *Result {
	sort.SliceStable(extracted, func(i, j int) bool {
		if extracted[i].path != extracted[j].path {
			return extracted[i].path < extracted[j].path
		}
		return extracted[i].name < extracted[j].name
	})

	p := &core.Project{
		RootPath:   core.NormalizePath(b.opts.RootPath),
		Components: []*core.Component{},
		Services:   []*core.Service{},
		Modules:    []*core.Module{},
	}
	res := &Result{Project: p}

	for _, e := range extracted {
		res.Warnings = append(res.Warnings, e.warnings...)
		mergeFile(p, e.file)
		switch {
		case e.component != nil:
			p.Components = append(p.Components, e.component)
		case e.service != nil:
			p.Services = append(p.Services, e.service)
		case e.module != nil:
			p.Modules = append(p.Modules, e.module)
		case e.directive != nil:
			p.Directives = append(p.Directives, e.directive)
		case e.pipe != nil:
			p.Pipes = append(p.Pipes, e.pipe)
		default:
			b.logger.Debug("record not classified", "path", e.path, "class", e.name)
		}
	}
	return res
}

// mergeFile appends f to the project files. Records sharing a path are
// folded into one file; extracted entities arrive sorted by path.
func mergeFile(p *core.Project, f *core.SourceFile) {
	if f == nil {
		return
	}
	if n := len(p.Files); n > 0 && p.Files[n-1].Path == f.Path {
		last := p.Files[n-1]
		last.Imports = append(last.Imports, f.Imports...)
		last.Exports = append(last.Exports, f.Exports...)
		return
	}
	p.Files = append(p.Files, &core.SourceFile{
		Path:    f.Path,
		Imports: slices.Clone(f.Imports),
		Exports: slices.Clone(f.Exports),
	})
}

// markCalledServiceMethods sets Method.Called on service methods that another
// entity reaches through an injected parameter.
func markCalledServiceMethods(p *core.Project) {
	called := make(map[string]map[string]bool)
	visit := func(injections []core.Injection, methods []core.Method) {
		for _, inj := range injections {
			for _, m := range methods {
				for _, ref := range append(append([]string(nil), m.Calls...), m.MemberAccesses...) {
					if name, ok := referencedMember(ref, inj.Param); ok {
						if called[inj.Type] == nil {
							called[inj.Type] = make(map[string]bool)
						}
						called[inj.Type][name] = true
					}
				}
			}
		}
	}

	for _, c := range p.Components {
		visit(c.Injections, c.Methods)
	}
	for _, s := range p.Services {
		visit(s.Injections, s.Methods)
	}
	for _, d := range p.Directives {
		visit(d.Injections, d.Methods)
	}
	for _, pp := range p.Pipes {
		visit(pp.Injections, pp.Methods)
	}

	for _, s := range p.Services {
		for i := range s.Methods {
			if called[s.Name][s.Methods[i].Name] {
				s.Methods[i].Called = true
			}
		}
	}
}

// referencedMember returns the member named in ref when ref accesses param,
// e.g. "this.api.load()" with param "api" yields "load".
func referencedMember(ref, param string) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(ref, "this."), ".")
	if len(parts) < 2 || parts[0] != param {
		return "", false
	}
	name := parts[1]
	if i := strings.IndexAny(name, "(?!"); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}
