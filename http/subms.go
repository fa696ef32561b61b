package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"

	"github.com/hackside/backend/httpjson"
)

// maxDeckUploadBytes bounds slide deck uploads.
const maxDeckUploadBytes = 50 << 20

func (httpserver *HttpServer) submitDeck(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxDeckUploadBytes); err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDeckUploadBytes))
	if err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	created, err := httpserver.submSrvc.CreateDeckSubm(r.Context(), claims.UUID,
		eventUuid, header.Filename, content)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(created))
}

func (httpserver *HttpServer) submitRepo(w http.ResponseWriter, r *http.Request) {
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

	type repoRequest struct {
		RepoUrl  string `json:"repo_url"`
		VideoUrl string `json:"video_url"`
	}
	var request repoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	logger.Info("received repository submission",
		"event", eventUuid, "repo_url", request.RepoUrl)

	created, err := httpserver.submSrvc.CreateRepoSubm(r.Context(), claims.UUID,
		eventUuid, request.RepoUrl, request.VideoUrl)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(created))
}

func (httpserver *HttpServer) mySubmissions(w http.ResponseWriter, r *http.Request) {
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

	mine, err := httpserver.submSrvc.MySubmissions(r.Context(), claims.UUID, eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	indexed := make(map[string]Subm, len(mine))
	for roundID, s := range mine {
		indexed[roundID] = mapSubm(s)
	}
	httpjson.WriteSuccessJson(w, indexed)
}

func (httpserver *HttpServer) listSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	grouped, err := httpserver.submSrvc.ListByEventGrouped(r.Context(), eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make(map[string][]Subm, len(grouped))
	for roundID, subms := range grouped {
		response[roundID] = mapSubms(subms)
	}
	httpjson.WriteSuccessJson(w, response)
}

func (httpserver *HttpServer) patchScore(w http.ResponseWriter, r *http.Request) {
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
	roundID := chi.URLParam(r, "roundId")

	type scoreRequest struct {
		Score *float64 `json:"score"`
	}
	var request scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Score == nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	patched, err := httpserver.submSrvc.PatchScore(r.Context(), claims.UUID,
		eventUuid, roundID, teamUuid, *request.Score)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(patched))
}

func (httpserver *HttpServer) recordAiOverall(w http.ResponseWriter, r *http.Request) {
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
	submUuid, err := uuidParam(r, "submUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type aiOverallRequest struct {
		Score *float64 `json:"score"`
	}
	var request aiOverallRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Score == nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	recorded, err := httpserver.submSrvc.RecordAiOverall(r.Context(), claims.UUID,
		eventUuid, submUuid, *request.Score)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(recorded))
}

func (httpserver *HttpServer) recordVivaScore(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	if _, err := requireClaims(r); err != nil {
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

	type vivaRequest struct {
		Score *float64 `json:"score"`
	}
	var request vivaRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Score == nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	recorded, err := httpserver.submSrvc.RecordVivaScore(r.Context(), eventUuid, teamUuid, *request.Score)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapSubm(recorded))
}
