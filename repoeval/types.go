package repoeval

// StructureSignals records boolean/count facts about a repository snapshot.
// Immutable once computed.
type StructureSignals struct {
	HasReadme     bool `json:"has_readme" dynamo:"has_readme"`
	HasManifest   bool `json:"has_manifest" dynamo:"has_manifest"`
	HasTests      bool `json:"has_tests" dynamo:"has_tests"`
	HasDockerfile bool `json:"has_dockerfile" dynamo:"has_dockerfile"`
	HasCiConfig   bool `json:"has_ci_config" dynamo:"has_ci_config"`
	FileCount     int  `json:"file_count" dynamo:"file_count"`
	DirCount      int  `json:"dir_count" dynamo:"dir_count"`
}

// Excerpt is a bounded slice of one source file sent to the model for
// qualitative rating. Text starts with a "FILE: <name>" marker line.
type Excerpt struct {
	File string
	Text string
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Smell categories, in the fixed order findings are reported in.
const (
	SmellHighComplexity      = "high_complexity"
	SmellMissingTests        = "missing_tests"
	SmellLowLint             = "low_lint"
	SmellDuplication         = "duplication"
	SmellMissingReadme       = "missing_readme"
	SmellMissingDependencies = "missing_dependencies"
)

type ComplexFunc struct {
	File       string `json:"file" dynamo:"file"`
	Name       string `json:"name" dynamo:"name"`
	Complexity int    `json:"complexity" dynamo:"complexity"`
}

type SmellFinding struct {
	Category string        `json:"category" dynamo:"category"`
	Severity Severity      `json:"severity" dynamo:"severity"`
	Message  string        `json:"message" dynamo:"message"`
	Details  []ComplexFunc `json:"details,omitempty" dynamo:"details,omitempty"`
}

// Ratings holds per-dimension means over all rated excerpts, 0-100 each,
// plus the per-excerpt free-text feedback in excerpt order.
type Ratings struct {
	Logic     float64  `json:"logic" dynamo:"logic"`
	Relevance float64  `json:"relevance" dynamo:"relevance"`
	Style     float64  `json:"style" dynamo:"style"`
	Feedback  []string `json:"feedback" dynamo:"feedback"`
}

type Rubric struct {
	Grade   string            `json:"grade" dynamo:"grade"`
	Summary string            `json:"summary" dynamo:"summary"`
	Bands   map[string]string `json:"bands" dynamo:"bands"`
}

// Result is the aggregate record of one evaluation run. Immutable after
// the pipeline completes.
type Result struct {
	FinalScore  float64          `json:"final_score" dynamo:"final_score"`
	Rubric      Rubric           `json:"rubric" dynamo:"rubric"`
	RiskScore   float64          `json:"risk_score" dynamo:"risk_score"`
	Structure   StructureSignals `json:"structure" dynamo:"structure"`
	Duplication float64          `json:"duplication" dynamo:"duplication"`
	Logic       float64          `json:"logic" dynamo:"logic"`
	Relevance   float64          `json:"relevance" dynamo:"relevance"`
	Style       float64          `json:"style" dynamo:"style"`
	LintScore   float64          `json:"lint_score" dynamo:"lint_score"`
	LintRan     bool             `json:"lint_ran" dynamo:"lint_ran"`
	DupRan      bool             `json:"dup_ran" dynamo:"dup_ran"`
	Smells      []SmellFinding   `json:"smells" dynamo:"smells"`
	Feedback    []string         `json:"llm_feedback" dynamo:"llm_feedback"`

	// ExcerptCount is the number of code excerpts the model rated, at most
	// maxExcerpts.
	ExcerptCount int `json:"files_analyzed" dynamo:"files_analyzed"`

	MentorMarkdown  string `json:"mentor_summary_markdown" dynamo:"mentor_summary_markdown"`
	RewriteMarkdown string `json:"rewrite_suggestions_markdown" dynamo:"rewrite_suggestions_markdown"`

	// ReportPdf is the rendered report artifact. It is stored to the
	// artifact store, not persisted in the evaluation row.
	ReportPdf []byte `json:"-" dynamo:"-"`
}
