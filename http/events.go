package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/httpjson"
)

// maxImageUploadBytes bounds event banner/logo uploads.
const maxImageUploadBytes = 10 << 20

func (httpserver *HttpServer) createEvent(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type createRequest struct {
		Name        string        `json:"name"`
		Summary     string        `json:"summary"`
		Description string        `json:"description"`
		Date        time.Time     `json:"date"`
		RegDeadline time.Time     `json:"registration_deadline"`
		Prize       string        `json:"prize"`
		MaxTeams    int           `json:"max_teams"`
		MinMembers  int           `json:"min_members"`
		MaxMembers  int           `json:"max_members"`
		Rounds      []event.Round `json:"rounds"`
	}

	var request createRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	organizer, err := uuid.Parse(claims.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, newErrUnauthorized())
		return
	}

	created, err := httpserver.eventSrvc.Create(r.Context(), organizer, event.CreateEventParams{
		Name:        request.Name,
		Summary:     request.Summary,
		Description: request.Description,
		Date:        request.Date,
		RegDeadline: request.RegDeadline,
		Prize:       request.Prize,
		MaxTeams:    request.MaxTeams,
		MinMembers:  request.MinMembers,
		MaxMembers:  request.MaxMembers,
		Rounds:      request.Rounds,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEvent(created))
}

func (httpserver *HttpServer) listMyEvents(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	organizer, err := uuid.Parse(claims.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, newErrUnauthorized())
		return
	}

	events, err := httpserver.eventSrvc.ListByOrganizer(r.Context(), organizer)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEvents(events))
}

func (httpserver *HttpServer) getEvent(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	found, err := httpserver.eventSrvc.Get(r.Context(), eventUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEvent(found))
}

func (httpserver *HttpServer) uploadEventImage(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, err := requireClaims(r)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	caller, err := uuid.Parse(claims.UUID)
	if err != nil {
		httpjson.HandleError(logger, w, newErrUnauthorized())
		return
	}

	eventUuid, err := uuidParam(r, "eventUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}
	kind := chi.URLParam(r, "kind")
	if kind != event.ImageKindBanner && kind != event.ImageKindLogo {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxImageUploadBytes))
	if err != nil {
		httpjson.HandleError(logger, w, newErrInvalidRequestBody())
		return
	}

	url, err := httpserver.eventSrvc.UploadImage(r.Context(), caller, eventUuid, kind, content)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, map[string]string{"url": url})
}
