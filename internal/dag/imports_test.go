package dag

import (
	"reflect"
	"testing"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func importFixture() []*core.SourceFile {
	imports := func(sources ...string) []core.Import {
		out := make([]core.Import, len(sources))
		for i, s := range sources {
			out[i] = core.Import{Source: s}
		}
		return out
	}
	return []*core.SourceFile{
		{Path: "src/main.ts", Imports: imports("@angular/core", "./app/app.module")},
		{Path: "src/app/app.module.ts", Imports: imports("./shared", "./a.component", "./missing"), Exports: []string{"AppModule"}},
		{Path: "src/app/a.component.ts", Imports: imports("./shared/index.ts", "../main"), Exports: []string{"AComponent"}},
		{Path: "src/app/shared/index.ts", Exports: []string{"SharedModule"}},
		{Path: "src/app/self.ts", Imports: imports("./self")},
		{Path: "src/app/legacy.ts"},
	}
}

func TestBuildImports_Edges(t *testing.T) {
	ig := BuildImports(importFixture(), nil)

	if ig.NodeCount() != 6 {
		t.Errorf("expected 6 files, got %d", ig.NodeCount())
	}
	if ig.EdgeCount() != 5 {
		t.Errorf("expected 5 import edges, got %d", ig.EdgeCount())
	}
	// ./missing and the self import
	if ig.DroppedEdges() != 2 {
		t.Errorf("expected 2 dropped imports, got %d", ig.DroppedEdges())
	}
	want := []string{"src/app/a.component.ts", "src/app/shared/index.ts"}
	if got := ig.Dependencies("src/app/app.module.ts"); !reflect.DeepEqual(got, want) {
		t.Errorf("app.module imports: expected %v, got %v", want, got)
	}
}

func TestImportGraph_Orphans(t *testing.T) {
	ig := BuildImports(importFixture(), nil)

	want := []string{"src/app/legacy.ts", "src/app/self.ts"}
	if got := ig.Orphans(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected orphans %v, got %v", want, got)
	}

	empty := BuildImports(nil, nil)
	if got := empty.Orphans(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil orphans, got %#v", got)
	}
}

func TestImportGraph_Rankings(t *testing.T) {
	ig := BuildImports(importFixture(), nil)

	wantImported := []core.FileCount{
		{Path: "src/app/shared/index.ts", Count: 2},
		{Path: "src/app/a.component.ts", Count: 1},
	}
	if got := ig.MostImported(2); !reflect.DeepEqual(got, wantImported) {
		t.Errorf("most imported: expected %v, got %v", wantImported, got)
	}

	wantDependent := []core.FileCount{
		{Path: "src/app/a.component.ts", Count: 2},
		{Path: "src/app/app.module.ts", Count: 2},
		{Path: "src/main.ts", Count: 1},
	}
	if got := ig.MostDependent(DefaultTopFiles); !reflect.DeepEqual(got, wantDependent) {
		t.Errorf("most dependent: expected %v, got %v", wantDependent, got)
	}
}

func TestImportGraph_Cycles(t *testing.T) {
	ig := BuildImports(importFixture(), nil)

	cycles := ig.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("expected 1 import cycle, got %d: %v", len(cycles), cycles)
	}
	want := "src/app/a.component.ts -> src/main.ts -> src/app/app.module.ts -> src/app/a.component.ts"
	if got := cycles[0].String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIsRelative(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"./a", true},
		{"../b/c", true},
		{".", true},
		{"@angular/core", false},
		{"rxjs", false},
		{".hidden", false},
	}
	for _, tt := range tests {
		if got := isRelative(tt.source); got != tt.want {
			t.Errorf("isRelative(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}
