package leaderboard

import (
	"sort"

	"github.com/hackside/backend/event"
)

// RoundScore is one team's already-extracted score in one judged round.
// The caller resolves submissions into these; this package only ranks.
type RoundScore struct {
	TeamID  string
	RoundID string
	Score   float64
}

// Entry is one ranked row within a single round.
type Entry struct {
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Score    float64 `json:"score"`
}

// OverallEntry is one team's combined standing across all rounds. Total is
// the plain sum of the team's round scores; Rounds counts how many rounds
// the team was scored in.
type OverallEntry struct {
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Total    float64 `json:"total"`
	Rounds   int     `json:"rounds"`
}

// Board holds per-round rankings and the overall standing.
type Board struct {
	Rounds  map[string][]Entry `json:"rounds"`
	Overall []OverallEntry     `json:"overall"`
}

// Compute builds the board from round scores and a team-id → team-name
// index. Scores whose team is missing from the index are skipped. Each
// round is sorted descending by score; the overall standing descending by
// total. Ties break on team id so the output is deterministic and
// independent of input order. The three judged rounds are always present
// in Rounds, empty when nothing is scored yet.
func Compute(scores []RoundScore, teamNames map[string]string) *Board {
	rounds := map[string][]Entry{
		event.RoundPpt:  {},
		event.RoundRepo: {},
		event.RoundViva: {},
	}
	totals := make(map[string]*OverallEntry)

	for _, rs := range scores {
		name, ok := teamNames[rs.TeamID]
		if !ok {
			continue // orphaned submission, team was deleted
		}
		rounds[rs.RoundID] = append(rounds[rs.RoundID], Entry{
			TeamID:   rs.TeamID,
			TeamName: name,
			Score:    rs.Score,
		})
		total, ok := totals[rs.TeamID]
		if !ok {
			total = &OverallEntry{TeamID: rs.TeamID, TeamName: name}
			totals[rs.TeamID] = total
		}
		total.Total += rs.Score
		total.Rounds++
	}

	for _, entries := range rounds {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Score != entries[j].Score {
				return entries[i].Score > entries[j].Score
			}
			return entries[i].TeamID < entries[j].TeamID
		})
	}

	overall := make([]OverallEntry, 0, len(totals))
	for _, total := range totals {
		overall = append(overall, *total)
	}
	sort.Slice(overall, func(i, j int) bool {
		if overall[i].Total != overall[j].Total {
			return overall[i].Total > overall[j].Total
		}
		return overall[i].TeamID < overall[j].TeamID
	})

	return &Board{Rounds: rounds, Overall: overall}
}
