package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/hackside/backend/event"
)

var testTeams = map[string]string{
	"t1": "Alpha",
	"t2": "Beta",
	"t3": "Gamma",
}

func testScores() []RoundScore {
	return []RoundScore{
		{TeamID: "t1", RoundID: "ppt", Score: 80},
		{TeamID: "t2", RoundID: "ppt", Score: 90},
		{TeamID: "t1", RoundID: "repo", Score: 70},
		{TeamID: "t3", RoundID: "repo", Score: 95},
		{TeamID: "t2", RoundID: "viva", Score: 60},
	}
}

func TestComputeRoundsSortedDescending(t *testing.T) {
	board := Compute(testScores(), testTeams)

	ppt := board.Rounds["ppt"]
	require.Len(t, ppt, 2)
	require.Equal(t, "Beta", ppt[0].TeamName)
	require.Equal(t, 90.0, ppt[0].Score)
	require.Equal(t, "Alpha", ppt[1].TeamName)

	repo := board.Rounds["repo"]
	require.Len(t, repo, 2)
	require.Equal(t, "Gamma", repo[0].TeamName)
}

func TestComputeOverallIsPlainSum(t *testing.T) {
	board := Compute(testScores(), testTeams)

	require.Len(t, board.Overall, 3)
	byTeam := map[string]OverallEntry{}
	for _, entry := range board.Overall {
		byTeam[entry.TeamID] = entry
	}
	require.Equal(t, 150.0, byTeam["t1"].Total) // 80 + 70
	require.Equal(t, 2, byTeam["t1"].Rounds)
	require.Equal(t, 150.0, byTeam["t2"].Total) // 90 + 60
	require.Equal(t, 95.0, byTeam["t3"].Total)

	// tie between t1 and t2 breaks on team id
	require.Equal(t, "t1", board.Overall[0].TeamID)
	require.Equal(t, "t2", board.Overall[1].TeamID)
	require.Equal(t, "t3", board.Overall[2].TeamID)
}

func TestComputeSkipsOrphanedSubmissions(t *testing.T) {
	scores := append(testScores(), RoundScore{TeamID: "ghost", RoundID: "ppt", Score: 100})
	board := Compute(scores, testTeams)

	require.Len(t, board.Rounds["ppt"], 2)
	for _, entry := range board.Overall {
		require.NotEqual(t, "ghost", entry.TeamID)
	}
}

func TestComputeInsertionOrderIndependent(t *testing.T) {
	reference := Compute(testScores(), testTeams)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := testScores()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		require.Equal(t, reference, Compute(shuffled, testTeams))
	}
}

func TestComputeEmptyInput(t *testing.T) {
	board := Compute(nil, testTeams)
	require.Empty(t, board.Overall)

	// an unscored board still lists every judged round
	require.Len(t, board.Rounds, 3)
	for _, roundID := range []string{event.RoundPpt, event.RoundRepo, event.RoundViva} {
		entries, ok := board.Rounds[roundID]
		require.True(t, ok, "round %s missing from board", roundID)
		require.Empty(t, entries)
	}
}
