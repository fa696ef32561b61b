package repoeval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hackside/backend/llm"
)

// defaultRating substitutes for any rating dimension the model omitted.
const defaultRating = 70.0

// rateExcerpts sends each excerpt to the model for a strict-JSON rating
// and averages the dimensions across excerpts. A response that cannot be
// parsed is fatal for the evaluation: scores are not safe to guess. An
// empty excerpt list yields zero for every dimension.
func rateExcerpts(ctx context.Context, client llm.Client, desc string, excerpts []Excerpt) (Ratings, error) {
	if len(excerpts) == 0 {
		return Ratings{Feedback: []string{}}, nil
	}

	var logicSum, relevanceSum, styleSum float64
	feedback := make([]string, 0, len(excerpts))

	for _, excerpt := range excerpts {
		prompt := fmt.Sprintf(
			"Rate this code strictly. Return JSON only:\n"+
				"{\"logic\":80,\"relevance\":85,\"style\":75,\"feedback\":\"...\"}\n\n"+
				"PROJECT: %s\nCODE:\n%s",
			desc, excerpt.Text)

		content, err := client.Complete(ctx, llm.Request{
			Messages:   []llm.Message{{Role: llm.RoleUser, Content: prompt}},
			JSONObject: true,
		})
		if err != nil {
			return Ratings{}, ErrCodeRating().SetDebug(err)
		}

		var rating struct {
			Logic     *float64 `json:"logic"`
			Relevance *float64 `json:"relevance"`
			Style     *float64 `json:"style"`
			Feedback  string   `json:"feedback"`
		}
		if err := json.Unmarshal([]byte(content), &rating); err != nil {
			return Ratings{}, ErrCodeRating().SetDebug(
				fmt.Errorf("unparseable rating response: %w", err))
		}

		logicSum += ratingOrDefault(rating.Logic)
		relevanceSum += ratingOrDefault(rating.Relevance)
		styleSum += ratingOrDefault(rating.Style)
		feedback = append(feedback, rating.Feedback)
	}

	n := float64(len(excerpts))
	return Ratings{
		Logic:     logicSum / n,
		Relevance: relevanceSum / n,
		Style:     styleSum / n,
		Feedback:  feedback,
	}, nil
}

func ratingOrDefault(v *float64) float64 {
	if v == nil {
		return defaultRating
	}
	return *v
}
