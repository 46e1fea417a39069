package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"gopkg.in/yaml.v3"
)

// ReportOptions selects optional report sections.
type ReportOptions struct {
	IncludeMetrics         bool
	IncludeRecommendations bool
}

// report is the serialized view of an analysis result.
type report struct {
	Project         *core.Project          `json:"project"`
	Issues          []core.Issue           `json:"issues"`
	Metrics         *core.ProjectMetrics   `json:"metrics,omitempty"`
	Recommendations *[]core.Recommendation `json:"recommendations,omitempty"`
	Summary         core.Summary           `json:"summary"`
	Warnings        []core.Warning         `json:"warnings"`
}

func newReport(res *core.AnalysisResult, opts ReportOptions) report {
	rep := report{
		Project:  res.Project,
		Issues:   res.Issues,
		Summary:  res.Summary,
		Warnings: res.Warnings,
	}
	if opts.IncludeMetrics {
		m := res.Metrics
		rep.Metrics = &m
	}
	if opts.IncludeRecommendations {
		recs := res.Recommendations
		rep.Recommendations = &recs
	}
	return rep
}

// WriteReport renders res to w in the given format.
func WriteReport(w io.Writer, res *core.AnalysisResult, format Format, opts ReportOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, newReport(res, opts))
	case FormatYAML:
		return writeYAML(w, newReport(res, opts))
	case FormatTable:
		return writeTables(w, res, opts)
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", format, Formats())
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML renders v with the same keys and field order as its JSON form.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle clears the flow and quoting styles JSON input leaves on nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeTables(w io.Writer, res *core.AnalysisResult, opts ReportOptions) error {
	var buf bytes.Buffer

	if len(res.Issues) == 0 {
		buf.WriteString("No issues found.\n")
	} else {
		t := newTable(&buf)
		t.AppendHeader(table.Row{"Severity", "Rule", "Location", "Message"})
		for _, is := range res.Issues {
			t.AppendRow(table.Row{is.Severity.String(), is.Rule, location(is), is.Message})
		}
		t.Render()
	}

	if opts.IncludeRecommendations && len(res.Recommendations) > 0 {
		buf.WriteString("\n")
		t := newTable(&buf)
		t.AppendHeader(table.Row{"Priority", "Category", "Recommendation", "Details"})
		for _, rec := range res.Recommendations {
			t.AppendRow(table.Row{rec.Priority.String(), rec.Category.String(), rec.Title, rec.Description})
		}
		t.Render()
	}

	if opts.IncludeMetrics {
		buf.WriteString("\n")
		t := newTable(&buf)
		t.AppendHeader(table.Row{"Metric", "Value"})
		m := res.Metrics
		for _, row := range []table.Row{
			{"Components", m.TotalComponents},
			{"Services", m.TotalServices},
			{"Modules", m.TotalModules},
			{"Directives", m.TotalDirectives},
			{"Pipes", m.TotalPipes},
			{"Average complexity", strconv.FormatFloat(m.AverageComplexity, 'f', 2, 64)},
			{"Max complexity", m.MaxComplexity},
			{"OnPush components", m.OnPushComponents},
			{"Default components", m.DefaultComponents},
			{"Graph nodes", m.GraphNodes},
			{"Graph edges", m.GraphEdges},
			{"Dropped edges", m.DroppedEdges},
			{"Cycles", m.Cycles},
			{"Max chain depth", m.MaxChainDepth},
			{"Source files", m.SourceFiles},
			{"Import edges", m.ImportEdges},
			{"Import cycles", m.ImportCycles},
			{"Orphaned files", len(m.OrphanedFiles)},
		} {
			t.AppendRow(row)
		}
		t.Render()

		if len(m.MostImported) > 0 {
			buf.WriteString("\n")
			t := newTable(&buf)
			t.AppendHeader(table.Row{"Most imported file", "Importers"})
			for _, fc := range m.MostImported {
				t.AppendRow(table.Row{fc.Path, fc.Count})
			}
			t.Render()
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func location(is core.Issue) string {
	if is.Line > 0 {
		return fmt.Sprintf("%s:%d", is.FilePath, is.Line)
	}
	return is.FilePath
}
