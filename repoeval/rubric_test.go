package repoeval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRubricBandsInclusiveLowerEdge(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{100, "A+"},
		{90.00, "A+"},
		{89.99, "A"},
		{80.00, "A"},
		{79.99, "B"},
		{70.00, "B"},
		{69.99, "C"},
		{60.00, "C"},
		{59.99, "D"},
		{0, "D"},
	}
	for _, tc := range cases {
		rubric := rubricFor(tc.score)
		require.Equal(t, tc.grade, rubric.Grade, "score %v", tc.score)
		require.NotEmpty(t, rubric.Summary)
		require.Len(t, rubric.Bands, 5)
	}
}
