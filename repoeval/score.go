package repoeval

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp100(v float64) float64 {
	return math.Max(0.0, math.Min(100.0, v))
}

// riskScore maps duplication, lint score, smell count and structural gaps
// to a single 0-100 number, higher is worse. Total over all input ranges.
func riskScore(duplication float64, lintScore float64, smellCount int, sig StructureSignals) float64 {
	base := 0.0
	base += duplication * 0.4
	base += math.Max(0.0, 10.0-lintScore) * 3.0
	base += float64(smellCount) * 4.0
	if !sig.HasTests {
		base += 15.0
	}
	if !sig.HasReadme {
		base += 5.0
	}
	return round2(clamp100(base))
}

// structureScore weighs the structural hygiene flags. The weights sum to
// 80, not 100; the final-score formula accounts for that.
func structureScore(sig StructureSignals) float64 {
	score := 0.0
	if sig.HasReadme {
		score += 20
	}
	if sig.HasManifest {
		score += 20
	}
	if sig.HasTests {
		score += 15
	}
	if sig.HasDockerfile {
		score += 15
	}
	if sig.HasCiConfig {
		score += 10
	}
	return score
}

// finalScore blends duplication, LLM ratings, lint score and structural
// completeness into one 0-100 quality score, higher is better.
func finalScore(duplication, logic, relevance, style, lintScore float64, sig StructureSignals) float64 {
	score := (100-duplication)*0.3 +
		logic*0.25 +
		relevance*0.2 +
		style*0.15 +
		(lintScore*10)*0.05 +
		structureScore(sig)*0.05
	return round2(clamp100(score))
}
