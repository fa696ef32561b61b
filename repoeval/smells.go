package repoeval

import (
	"encoding/json"
	"fmt"
)

const (
	complexityThreshold  = 10
	lowLintThreshold     = 5.0
	duplicationThreshold = 25.0
	maxComplexityDetails = 20
)

// parseComplexity turns the complexity analyzer's raw JSON output into a
// flat list of functions at or above the complexity threshold. Malformed
// or empty input is treated as "no high-complexity functions found".
func parseComplexity(raw string) []ComplexFunc {
	if raw == "" {
		return nil
	}

	var data map[string][]struct {
		Name       string `json:"name"`
		Complexity int    `json:"complexity"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	var funcs []ComplexFunc
	for file, items := range data {
		for _, fn := range items {
			if fn.Complexity >= complexityThreshold {
				funcs = append(funcs, ComplexFunc{
					File:       file,
					Name:       fn.Name,
					Complexity: fn.Complexity,
				})
			}
		}
	}
	return funcs
}

// detectSmells maps the static signals to categorized findings. Pure and
// idempotent: identical inputs yield an identical list in the fixed
// category order. Findings never suppress each other.
func detectSmells(complexFuncs []ComplexFunc, lintScore float64, duplication float64, sig StructureSignals) []SmellFinding {
	var smells []SmellFinding

	if len(complexFuncs) > 0 {
		details := complexFuncs
		if len(details) > maxComplexityDetails {
			details = details[:maxComplexityDetails]
		}
		smells = append(smells, SmellFinding{
			Category: SmellHighComplexity,
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("Some functions have very high cyclomatic complexity (>=%d).", complexityThreshold),
			Details:  details,
		})
	}

	if !sig.HasTests {
		smells = append(smells, SmellFinding{
			Category: SmellMissingTests,
			Severity: SeverityHigh,
			Message:  "No tests folder or test files detected.",
		})
	}

	if lintScore < lowLintThreshold {
		smells = append(smells, SmellFinding{
			Category: SmellLowLint,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("Lint score is low (%.1f/10).", lintScore),
		})
	}

	if duplication >= duplicationThreshold {
		smells = append(smells, SmellFinding{
			Category: SmellDuplication,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("High code duplication detected: %.2f%%.", duplication),
		})
	}

	if !sig.HasReadme {
		smells = append(smells, SmellFinding{
			Category: SmellMissingReadme,
			Severity: SeverityLow,
			Message:  "README not found or not named correctly.",
		})
	}

	if !sig.HasManifest {
		smells = append(smells, SmellFinding{
			Category: SmellMissingDependencies,
			Severity: SeverityLow,
			Message:  "No dependency manifest found.",
		})
	}

	return smells
}
