package repoeval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseComplexityMalformedInput(t *testing.T) {
	require.Nil(t, parseComplexity(""))
	require.Nil(t, parseComplexity("not json at all"))
	require.Nil(t, parseComplexity("{\"file.py\": \"oops\"}"))
}

func TestParseComplexityFiltersByThreshold(t *testing.T) {
	raw := `{"main.py": [
		{"name": "simple", "complexity": 3},
		{"name": "gnarly", "complexity": 12}
	]}`
	funcs := parseComplexity(raw)
	require.Len(t, funcs, 1)
	require.Equal(t, "gnarly", funcs[0].Name)
	require.Equal(t, 12, funcs[0].Complexity)
}

func TestDetectSmellsAllCategoriesInStableOrder(t *testing.T) {
	complexFuncs := []ComplexFunc{{File: "main.py", Name: "gnarly", Complexity: 12}}
	sig := StructureSignals{} // nothing present

	smells := detectSmells(complexFuncs, 2.0, 30.0, sig)
	require.Len(t, smells, 6)

	categories := make([]string, len(smells))
	for i, smell := range smells {
		categories[i] = smell.Category
	}
	require.Equal(t, []string{
		SmellHighComplexity,
		SmellMissingTests,
		SmellLowLint,
		SmellDuplication,
		SmellMissingReadme,
		SmellMissingDependencies,
	}, categories)
}

func TestDetectSmellsIdempotent(t *testing.T) {
	sig := StructureSignals{HasReadme: true}
	first := detectSmells(nil, 4.9, 25.0, sig)
	second := detectSmells(nil, 4.9, 25.0, sig)
	require.Equal(t, first, second)
}

func TestDetectSmellsCleanRepository(t *testing.T) {
	smells := detectSmells(nil, 9.5, 0.0, allFlagsSet())
	require.Empty(t, smells)
}

func TestDetectSmellsCapsComplexityDetails(t *testing.T) {
	var complexFuncs []ComplexFunc
	for i := 0; i < 30; i++ {
		complexFuncs = append(complexFuncs, ComplexFunc{Name: "f", Complexity: 11})
	}
	smells := detectSmells(complexFuncs, 10, 0, allFlagsSet())
	require.Len(t, smells[0].Details, maxComplexityDetails)
}
