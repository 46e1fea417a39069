package builder

import (
	"context"
	"testing"

	"github.com/leapstack-labs/ngaudit/internal/testutil"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, records []core.FileRecord) *Result {
	t.Helper()
	res, err := New(Options{RootPath: "./web", Workers: 4, Logger: testutil.NewTestLogger(t)}).
		Build(context.Background(), records)
	require.NoError(t, err)
	return res
}

func TestBuild_Component(t *testing.T) {
	rec := testutil.ComponentRecord(`src\app\user\user-list.component.ts`, "UserListComponent",
		testutil.Args{
			"selector":        "app-user-list",
			"templateUrl":     "./user-list.component.html",
			"styleUrls":       []any{"./user-list.component.css"},
			"changeDetection": "ChangeDetectionStrategy.OnPush",
		},
		testutil.Ctor("users", "UserService", "router", "Router"),
		testutil.Input("filter"),
		testutil.Output("selected"),
		testutil.Field("items"),
		testutil.Field("pageSize", "readonly"),
		testutil.Method("ngOnInit", testutil.Branches(1)),
		testutil.Method("ngOnDestroy", nil),
		testutil.Method("select", nil),
		testutil.Method("track", nil, "private"),
	)

	res := build(t, []core.FileRecord{rec})
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Project.Components, 1)

	c := res.Project.Components[0]
	assert.Equal(t, "web", res.Project.RootPath)
	assert.Equal(t, "src/app/user/user-list.component.ts", c.FilePath)
	assert.Equal(t, "app-user-list", c.Selector)
	assert.Nil(t, c.Template)
	require.NotNil(t, c.TemplateURL)
	assert.Equal(t, "./user-list.component.html", *c.TemplateURL)
	assert.Equal(t, []string{"./user-list.component.css"}, c.StyleURLs)
	assert.Equal(t, core.ChangeDetectionOnPush, c.ChangeDetection)
	assert.Equal(t, []string{"filter"}, c.Inputs)
	assert.Equal(t, []string{"selected"}, c.Outputs)
	assert.Equal(t, []string{"ngOnInit", "ngOnDestroy"}, c.LifecycleHooks)
	assert.Equal(t, []string{"UserService", "Router"}, c.Dependencies)
	assert.Equal(t, []core.Injection{{Param: "users", Type: "UserService"}, {Param: "router", Type: "Router"}}, c.Injections)
	assert.Len(t, c.MutableFields(), 1)
	// 1 + 2 hooks + 1 public method (select) + 1 branch
	assert.Equal(t, 5, c.ComplexityScore)
}

func TestBuild_ClassifiesByDecoratorThenKind(t *testing.T) {
	records := []core.FileRecord{
		{Path: "src/a.ts", Kind: core.KindUnknown, ClassName: "A", Decorators: []core.Decorator{{Name: "@Injectable()"}}},
		{Path: "src/b.ts", Kind: core.KindPipe, ClassName: "B"},
		{Path: "src/c.ts", Kind: core.KindUnknown, ClassName: "C"},
		{Path: "src/d.ts", Kind: core.KindService, ClassName: "D", Decorators: []core.Decorator{{Name: "Directive", Args: map[string]any{"selector": "[appD]"}}}},
		{Path: "src/e.ts", ClassName: "E", Decorators: []core.Decorator{{Name: "Pipe", Args: map[string]any{"name": "money"}}}},
	}

	res := build(t, records)
	require.Len(t, res.Project.Services, 1)
	assert.True(t, res.Project.Services[0].Injectable)
	require.Len(t, res.Project.Pipes, 2)
	assert.Equal(t, "money", res.Project.Pipes[1].PipeName)
	require.Len(t, res.Project.Directives, 1)
	assert.Equal(t, "[appD]", res.Project.Directives[0].Selector)
	assert.Empty(t, res.Warnings)
}

func TestBuild_MissingClassNameIsWarning(t *testing.T) {
	records := []core.FileRecord{
		testutil.ComponentRecord("src/app/anon.component.ts", "", nil),
		testutil.ComponentRecord("src/app/ok.component.ts", "OkComponent", nil),
	}

	res := build(t, records)
	require.Len(t, res.Project.Components, 1)
	assert.Equal(t, "OkComponent", res.Project.Components[0].Name)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, core.WarningParse, res.Warnings[0].Kind)
	assert.Equal(t, "src/app/anon.component.ts", res.Warnings[0].FilePath)
}

func TestBuild_MalformedArgsNullField(t *testing.T) {
	rec := testutil.ComponentRecord("src/app/x.component.ts", "XComponent", testutil.Args{
		"template":    42,
		"templateUrl": "./x.html",
	})

	res := build(t, []core.FileRecord{rec})
	require.Len(t, res.Project.Components, 1)
	c := res.Project.Components[0]
	assert.Nil(t, c.Template)
	assert.NotNil(t, c.TemplateURL)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "template")
}

func TestBuild_Module(t *testing.T) {
	rec := testutil.ModuleRecord("src/app/app.module.ts", "AppModule", testutil.Args{
		"declarations": []any{"AppComponent", "AppComponent", "HeaderComponent"},
		"imports":      []any{"BrowserModule", map[string]any{"name": "RouterModule"}},
		"bootstrap":    []any{"AppComponent"},
	})

	res := build(t, []core.FileRecord{rec})
	require.Len(t, res.Project.Modules, 1)
	m := res.Project.Modules[0]
	assert.Equal(t, []string{"AppComponent", "HeaderComponent"}, m.Declarations)
	assert.Equal(t, []string{"BrowserModule", "RouterModule"}, m.Imports)
	assert.True(t, m.IsRoot())
}

func TestBuild_DeterministicOrder(t *testing.T) {
	records := []core.FileRecord{
		testutil.ComponentRecord("src/c.ts", "C", nil),
		testutil.ComponentRecord("src/a.ts", "A2", nil),
		testutil.ComponentRecord("src/b.ts", "B", nil),
		testutil.ComponentRecord("src/a.ts", "A1", nil),
	}
	reversed := make([]core.FileRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	names := func(res *Result) []string {
		var out []string
		for _, c := range res.Project.Components {
			out = append(out, c.Name)
		}
		return out
	}
	assert.Equal(t, []string{"A1", "A2", "B", "C"}, names(build(t, records)))
	assert.Equal(t, names(build(t, records)), names(build(t, reversed)))
}

func TestBuild_CollectsSourceFiles(t *testing.T) {
	a1 := testutil.ComponentRecord("src/a.ts", "A1", nil)
	a1.Imports = []core.Import{{Source: "./b", Specifiers: []string{"B"}}}
	a1.Exports = []string{"A1"}
	a2 := testutil.ComponentRecord("src/a.ts", "A2", nil)
	a2.Imports = []core.Import{{Source: "@angular/core"}}
	util := core.FileRecord{Path: `src\util.ts`, Kind: core.KindUnknown, Exports: []string{"slugify"}}

	res := build(t, []core.FileRecord{util, a2, a1})

	require.Len(t, res.Project.Files, 2)
	a := res.Project.Files[0]
	assert.Equal(t, "src/a.ts", a.Path)
	assert.Equal(t, []core.Import{{Source: "./b", Specifiers: []string{"B"}}, {Source: "@angular/core"}}, a.Imports)
	assert.Equal(t, []string{"A1"}, a.Exports)
	assert.Equal(t, "src/util.ts", res.Project.Files[1].Path)
	assert.Equal(t, []string{"slugify"}, res.Project.Files[1].Exports)
}

func TestBuild_MarksCalledServiceMethods(t *testing.T) {
	records := []core.FileRecord{
		testutil.ServiceRecord("src/app/api.service.ts", "ApiService",
			testutil.Method("load", nil),
			testutil.Method("save", nil),
		),
		testutil.ComponentRecord("src/app/list.component.ts", "ListComponent", nil,
			testutil.Ctor("api", "ApiService"),
			testutil.Method("ngOnInit", testutil.Calls("this.api.load()")),
		),
	}

	res := build(t, records)
	svc := res.Project.Service("ApiService")
	require.NotNil(t, svc)
	assert.True(t, svc.Methods[0].Called)
	assert.False(t, svc.Methods[1].Called)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Build(ctx, testutil.FooRecords())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReferencedMember(t *testing.T) {
	tests := []struct {
		ref, param, want string
		ok               bool
	}{
		{"this.api.load()", "api", "load", true},
		{"api.save", "api", "save", true},
		{"this.api", "api", "", false},
		{"this.other.load", "api", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := referencedMember(tt.ref, tt.param)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
