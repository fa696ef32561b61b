package repoeval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLintScore(t *testing.T) {
	score, ok := parseLintScore("Your code has been rated at 7.43/10 (previous run: 7.2/10)")
	require.True(t, ok)
	require.Equal(t, 7.43, score)

	_, ok = parseLintScore("no score here")
	require.False(t, ok)

	_, ok = parseLintScore("rated at nonsense/10")
	require.False(t, ok)
}

func TestParseDuplication(t *testing.T) {
	pct, ok := parseDuplication(`{"statistics":{"total":{"percentage":12.5}}}`)
	require.True(t, ok)
	require.Equal(t, 12.5, pct)

	_, ok = parseDuplication("garbage")
	require.False(t, ok)
}

func TestRunToolUnavailableBinary(t *testing.T) {
	outcome := runTool(context.Background(), "definitely-not-a-real-binary-name")
	require.False(t, outcome.Available)
	require.Empty(t, outcome.Raw)
}

func TestRunToolCapturesOutput(t *testing.T) {
	outcome := runTool(context.Background(), "echo", "hello")
	require.True(t, outcome.Available)
	require.Equal(t, "hello\n", outcome.Raw)
}
