package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/httplog/v2"

	"github.com/hackside/backend/httpjson"
)

func (httpserver *HttpServer) getEvaluation(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	evalUuid, err := uuidParam(r, "evalUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	row, err := httpserver.evalSrvc.Get(r.Context(), evalUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEvaluation(row))
}

// downloadReport streams the rendered report PDF of a completed
// evaluation.
func (httpserver *HttpServer) downloadReport(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	evalUuid, err := uuidParam(r, "evalUuid")
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	pdf, err := httpserver.evalSrvc.GetReport(r.Context(), evalUuid)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Header().Set("Content-Disposition",
		`attachment; filename="evaluation-`+evalUuid.String()+`.pdf"`)
	w.Write(pdf)
}
