package repoeval

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func allFlagsSet() StructureSignals {
	return StructureSignals{
		HasReadme:     true,
		HasManifest:   true,
		HasTests:      true,
		HasDockerfile: true,
		HasCiConfig:   true,
	}
}

func TestStructureScoreAllFlags(t *testing.T) {
	require.Equal(t, 80.0, structureScore(allFlagsSet()))
}

func TestStructureScoreNoFlags(t *testing.T) {
	require.Equal(t, 0.0, structureScore(StructureSignals{}))
}

func TestFinalScorePerfectInputs(t *testing.T) {
	// 100*0.3 + 100*0.25 + 100*0.2 + 100*0.15 + 100*0.05 + 80*0.05 = 99.0
	score := finalScore(0, 100, 100, 100, 10, allFlagsSet())
	require.Equal(t, 99.0, score)
}

func TestRiskScoreNoTestsNoReadme(t *testing.T) {
	sig := StructureSignals{HasReadme: false, HasTests: false}
	// duplication 0, lint 10 so the lint term is 0, zero smells
	require.Equal(t, 20.0, riskScore(0, 10, 0, sig))
}

func TestScoresStayWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		sig := StructureSignals{
			HasReadme:     rng.Intn(2) == 0,
			HasManifest:   rng.Intn(2) == 0,
			HasTests:      rng.Intn(2) == 0,
			HasDockerfile: rng.Intn(2) == 0,
			HasCiConfig:   rng.Intn(2) == 0,
		}
		duplication := rng.Float64() * 200
		lint := rng.Float64()*20 - 5
		smellCount := rng.Intn(10)

		risk := riskScore(duplication, lint, smellCount, sig)
		require.GreaterOrEqual(t, risk, 0.0)
		require.LessOrEqual(t, risk, 100.0)

		final := finalScore(duplication, rng.Float64()*100, rng.Float64()*100,
			rng.Float64()*100, lint, sig)
		require.GreaterOrEqual(t, final, 0.0)
		require.LessOrEqual(t, final, 100.0)
	}
}
