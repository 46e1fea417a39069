package core

// =============================================================================
// Analysis results
// =============================================================================

// Issue is a single finding produced by a rule.
type Issue struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	FilePath string   `json:"file_path"`
	// Line and Column are 1-based; zero means unknown.
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// Recommendation is a cross-entity suggestion derived from aggregates.
type Recommendation struct {
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	// FilePath is empty for project-wide recommendations.
	FilePath string `json:"file_path,omitempty"`
}

// ProjectMetrics holds aggregate counts for the whole project.
type ProjectMetrics struct {
	TotalComponents   int     `json:"total_components"`
	TotalServices     int     `json:"total_services"`
	TotalModules      int     `json:"total_modules"`
	TotalDirectives   int     `json:"total_directives"`
	TotalPipes        int     `json:"total_pipes"`
	AverageComplexity float64 `json:"average_complexity"`
	MaxComplexity     int     `json:"max_complexity"`
	OnPushComponents  int     `json:"onpush_components"`
	DefaultComponents int     `json:"default_components"`
	TotalInputs       int     `json:"total_inputs"`
	TotalOutputs      int     `json:"total_outputs"`
	GraphNodes        int     `json:"graph_nodes"`
	GraphEdges        int     `json:"graph_edges"`
	DroppedEdges      int     `json:"dropped_edges"`
	Cycles            int     `json:"cycles"`
	MaxChainDepth     int     `json:"max_chain_depth"`
	SourceFiles       int     `json:"source_files"`
	ImportEdges       int     `json:"import_edges"`
	ImportCycles      int     `json:"import_cycles"`
	// OrphanedFiles are files no other file imports and that export nothing.
	OrphanedFiles []string    `json:"orphaned_files"`
	MostImported  []FileCount `json:"most_imported"`
	MostDependent []FileCount `json:"most_dependent"`
}

// FileCount pairs a file with an import count.
type FileCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Summary counts issues before and after the severity floor.
type Summary struct {
	TotalFound int              `json:"total_found"`
	Shown      int              `json:"shown"`
	BySeverity map[Severity]int `json:"by_severity"`
	Warnings   int              `json:"warnings"`
}

// AnalysisResult is the complete output of one run. It is created fresh per
// run and never mutated after the orchestrator returns it.
type AnalysisResult struct {
	Project         *Project         `json:"project"`
	Issues          []Issue          `json:"issues"`
	Metrics         ProjectMetrics   `json:"metrics"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         Summary          `json:"summary"`
	Warnings        []Warning        `json:"warnings"`
}
