package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/hackside/backend/auth"
	"github.com/hackside/backend/httpjson"
	"github.com/hackside/backend/team"
)

func callerMember(claims *auth.JwtClaims) team.Member {
	return team.Member{
		UserUuid: claims.UUID,
		Username: claims.Name,
		Email:    claims.Email,
	}
}

func (httpserver *HttpServer) createTeam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type createRequest struct {
		Name string `json:"name"`
	}
	var request createRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	created, err := httpserver.teamSrvc.Create(r.Context(), callerMember(claims), eventUuid, request.Name)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(created))
}

func (httpserver *HttpServer) listTeams(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	teams, err := httpserver.teamSrvc.ListByEvent(r.Context(), eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeams(teams))
}

func (httpserver *HttpServer) listOpenTeams(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	teams, err := httpserver.teamSrvc.ListOpen(r.Context(), eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeams(teams))
}

func (httpserver *HttpServer) myTeam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	mine, err := httpserver.teamSrvc.MyTeam(r.Context(), claims.UUID, eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	if mine == nil {
		httpjson.WriteSuccessJson(w, nil)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(mine))
}

func (httpserver *HttpServer) sendJoinRequest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	teamUuid, err := uuidParam(r, "teamUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	updated, err := httpserver.teamSrvc.SendJoinRequest(r.Context(), callerMember(claims), eventUuid, teamUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(updated))
}

func (httpserver *HttpServer) acceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	teamUuid, err := uuidParam(r, "teamUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	requestUuid := chi.URLParam(r, "requestUuid")

	updated, err := httpserver.teamSrvc.AcceptRequest(r.Context(), claims.UUID, teamUuid, requestUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(updated))
}

func (httpserver *HttpServer) rejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	teamUuid, err := uuidParam(r, "teamUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	requestUuid := chi.URLParam(r, "requestUuid")

	updated, err := httpserver.teamSrvc.RejectRequest(r.Context(), claims.UUID, teamUuid, requestUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(updated))
}

func (httpserver *HttpServer) removeTeamMember(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	teamUuid, err := uuidParam(r, "teamUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type removeRequest struct {
		UserUuid string `json:"user_uuid"`
	}
	var request removeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	updated, err := httpserver.teamSrvc.RemoveMember(r.Context(), claims.UUID, teamUuid, request.UserUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(updated))
}

func (httpserver *HttpServer) deleteTeam(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	teamUuid, err := uuidParam(r, "teamUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	if err := httpserver.teamSrvc.Delete(r.Context(), claims.UUID, teamUuid); err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]bool{"deleted": true})
}
