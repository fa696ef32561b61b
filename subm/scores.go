package subm

import (
	"context"

	"github.com/google/uuid"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/leaderboard"
)

// RoundScores extracts the per-round score entries the leaderboard is
// built from. Each round reads its own field: deck submissions the AI
// overall score, repository submissions the evaluation final score (and
// only once the evaluation completed), viva submissions the viva total.
// A missing value counts as zero rather than excluding the entry.
func (s *SubmSrvc) RoundScores(ctx context.Context, eventUuid uuid.UUID) ([]leaderboard.RoundScore, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	scores := make([]leaderboard.RoundScore, 0, len(rows))
	for _, row := range rows {
		var score float64
		switch row.RoundID {
		case event.RoundPpt:
			score = deref(row.AiOverall)
		case event.RoundRepo:
			if row.Status != StatusCompleted {
				continue
			}
			score = deref(row.FinalScore)
		case event.RoundViva:
			score = deref(row.VivaScore)
		default:
			continue
		}
		scores = append(scores, leaderboard.RoundScore{
			TeamID:  row.TeamUuid,
			RoundID: row.RoundID,
			Score:   score,
		})
	}
	return scores, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
