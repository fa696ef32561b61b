package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"

	"github.com/hackside/backend/httpjson"
	"github.com/hackside/backend/leaderboard"
)

// getLeaderboard serves the computed board for an event. The board is a
// pure function of persisted submissions and teams; it is cached briefly
// and concurrent recomputation is collapsed through singleflight.
func (httpserver *HttpServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	cacheKey := "leaderboard_" + eventUuid.String()
	if cached, found := httpserver.boardCache.Get(cacheKey); found {
		if board, ok := cached.(*leaderboard.Board); ok {
			httpjson.WriteSuccessJson(w, board)
			return
		}
	}

	result, err, _ := httpserver.sfGroup.Do(cacheKey, func() (any, error) {
		scores, err := httpserver.submSrvc.RoundScores(r.Context(), eventUuid)
		if err != nil {
			return nil, err
		}
		teams, err := httpserver.teamSrvc.ListByEvent(r.Context(), eventUuid)
		if err != nil {
			return nil, err
		}

		teamNames := make(map[string]string, len(teams))
		for _, t := range teams {
			teamNames[t.UUID.String()] = t.Name
		}

		board := leaderboard.Compute(scores, teamNames)
		httpserver.boardCache.Set(cacheKey, board, 0) // default expiration
		return board, nil
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, result.(*leaderboard.Board))
}
