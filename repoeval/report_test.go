package repoeval

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		FinalScore:   87.5,
		Rubric:       rubricFor(87.5),
		RiskScore:    12.0,
		Structure:    StructureSignals{HasReadme: true, HasTests: true},
		Duplication:  4.2,
		Logic:        85,
		Relevance:    90,
		Style:        80,
		LintScore:    8.7,
		LintRan:      true,
		DupRan:       true,
		Smells: []SmellFinding{
			{Category: SmellHighComplexity, Severity: SeverityHigh, Message: "3 functions above threshold"},
		},
		Feedback:     []string{"clean separation of handlers and storage"},
		ExcerptCount: 5,
	}
}

func TestRenderReportProducesPdf(t *testing.T) {
	pdf, err := renderReport(sampleResult())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	require.Greater(t, len(pdf), 500)
}

func TestRenderReportHandlesManySmells(t *testing.T) {
	res := sampleResult()
	for i := 0; i < 80; i++ {
		res.Smells = append(res.Smells, SmellFinding{
			Category: SmellLowLint,
			Severity: SeverityMedium,
			Message:  strings.Repeat("x", 200), // forces truncation
		})
	}

	pdf, err := renderReport(res)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestTruncateLineKeepsRunesIntact(t *testing.T) {
	short := "fits on one line"
	require.Equal(t, short, truncateLine(short))

	// multibyte feedback must never be cut mid-rune
	long := strings.Repeat("é", reportMaxChars+40)
	truncated := truncateLine(long)
	require.True(t, utf8.ValidString(truncated))
	require.Equal(t, reportMaxChars, utf8.RuneCountInString(truncated))

	exact := strings.Repeat("ü", reportMaxChars)
	require.Equal(t, exact, truncateLine(exact))
}
