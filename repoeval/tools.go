package repoeval

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hackside/backend/logger"
)

// toolTimeout bounds every external analyzer invocation.
const toolTimeout = 25 * time.Second

// ToolOutcome distinguishes "tool ran and found nothing" from "tool could
// not run". Both degrade the affected signal to a default value; only the
// Available flag differs.
type ToolOutcome struct {
	Available bool
	Raw       string
}

func runTool(ctx context.Context, name string, args ...string) ToolOutcome {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		logger.FromContext(ctx).Warn("analysis tool unavailable",
			"tool", name, "error", err)
		return ToolOutcome{Available: false}
	}
	return ToolOutcome{Available: true, Raw: string(out)}
}

// qualityScan holds the fail-soft outputs of the external analyzers.
type qualityScan struct {
	Complexity  ToolOutcome
	LintScore   float64
	LintRan     bool
	Duplication float64
	DupRan      bool
}

// scanQuality invokes the complexity analyzer, the linter and the
// duplication detector. Tool absence or failure must never block the
// evaluation: each missing signal degrades to its zero value.
func scanQuality(ctx context.Context, dir string) qualityScan {
	var scan qualityScan

	scan.Complexity = runTool(ctx, "radon", "cc", dir, "-s", "-j")

	lint := runTool(ctx, "pylint", dir, "--score=y")
	if lint.Available {
		if score, ok := parseLintScore(lint.Raw); ok {
			scan.LintScore = score
			scan.LintRan = true
		}
	}

	dup := runTool(ctx, "npx", "jscpd", dir, "--reporters", "json")
	if dup.Available {
		if pct, ok := parseDuplication(dup.Raw); ok {
			scan.Duplication = pct
			scan.DupRan = true
		}
	}

	return scan
}

// parseLintScore extracts the 0-10 quality score from the linter's free
// text report ("Your code has been rated at 7.43/10").
func parseLintScore(out string) (float64, bool) {
	const marker = "rated at "
	idx := strings.Index(out, marker)
	if idx < 0 {
		return 0, false
	}
	rest := out[idx+len(marker):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return 0, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(rest[:slash]), 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// parseDuplication extracts the total duplication percentage from the
// detector's JSON report.
func parseDuplication(out string) (float64, bool) {
	var report struct {
		Statistics struct {
			Total struct {
				Percentage float64 `json:"percentage"`
			} `json:"total"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return 0, false
	}
	return report.Statistics.Total.Percentage, true
}
