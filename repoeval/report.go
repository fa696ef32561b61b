package repoeval

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	reportMarginLeft = 40.0
	reportMarginTop  = 50.0
	reportLineStep   = 14.0
	reportMinY       = 80.0
	reportMaxChars   = 120
)

// renderReport serializes a fixed subset of the evaluation into a
// paginated PDF. Deterministic given its input.
func renderReport(res *Result) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	y := pageHeight - reportMarginTop
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(reportMarginLeft, pageHeight-y, "Code Evaluation Report")
	y -= 30

	pdf.SetFont("Helvetica", "", 10)

	lines := []string{
		fmt.Sprintf("Final Score: %.2f", res.FinalScore),
		fmt.Sprintf("Grade: %s", res.Rubric.Grade),
		fmt.Sprintf("Risk Score: %.2f", res.RiskScore),
		"",
		fmt.Sprintf("Logic: %.2f", res.Logic),
		fmt.Sprintf("Relevance: %.2f", res.Relevance),
		fmt.Sprintf("Style: %.2f", res.Style),
		fmt.Sprintf("Lint: %.2f", res.LintScore),
		fmt.Sprintf("Duplication: %.2f%%", res.Duplication),
		"",
		fmt.Sprintf("Excerpts Analyzed: %d", res.ExcerptCount),
		"",
		"Structure:",
		fmt.Sprintf("  README: %t", res.Structure.HasReadme),
		fmt.Sprintf("  Dependency Manifest: %t", res.Structure.HasManifest),
		fmt.Sprintf("  Tests: %t", res.Structure.HasTests),
		fmt.Sprintf("  Dockerfile: %t", res.Structure.HasDockerfile),
		fmt.Sprintf("  CI Config: %t", res.Structure.HasCiConfig),
	}

	if len(res.Smells) > 0 {
		lines = append(lines, "", "Smells:")
		for _, smell := range res.Smells {
			lines = append(lines, fmt.Sprintf("  [%s] %s: %s",
				smell.Severity, smell.Category, smell.Message))
		}
	}
	if len(res.Feedback) > 0 {
		lines = append(lines, "", "Reviewer Feedback:")
		for _, fb := range res.Feedback {
			lines = append(lines, "  - "+fb)
		}
	}
	lines = append(lines, "",
		"Use the mentor summary in the UI; this PDF is a compact technical snapshot.")

	for _, line := range lines {
		if y < reportMinY {
			pdf.AddPage()
			y = pageHeight - reportMarginTop
			pdf.SetFont("Helvetica", "", 10)
		}
		line = truncateLine(line)
		pdf.Text(reportMarginLeft, pageHeight-y, line)
		y -= reportLineStep
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ErrReportRender().SetDebug(err)
	}
	return buf.Bytes(), nil
}

// truncateLine caps a line at the printable width. Counted in runes so a
// multibyte character is never cut in half.
func truncateLine(line string) string {
	runes := []rune(line)
	if len(runes) <= reportMaxChars {
		return line
	}
	return string(runes[:reportMaxChars])
}
