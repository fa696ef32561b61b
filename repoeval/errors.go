package repoeval

import (
	"net/http"

	"github.com/hackside/backend/srvcerror"
)

func srvcErrInternal(err error) *srvcerror.Error {
	return srvcerror.ErrInternalSE().SetDebug(err)
}

const ErrCodeRepoAcquisitionFailed = "repo_acquisition_failed"

func ErrRepoAcquisition() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRepoAcquisitionFailed,
		"failed to fetch the repository for evaluation",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeCodeRatingFailed = "code_rating_failed"

func ErrCodeRating() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCodeRatingFailed,
		"the code rating service returned an unusable response",
	).SetHttpStatusCode(http.StatusBadGateway)
}

const ErrCodeNarrativeFailed = "narrative_generation_failed"

func ErrNarrative() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNarrativeFailed,
		"failed to generate the evaluation summary",
	).SetHttpStatusCode(http.StatusBadGateway)
}

const ErrCodeReportRenderFailed = "report_render_failed"

func ErrReportRender() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeReportRenderFailed,
		"failed to render the evaluation report",
	).SetHttpStatusCode(http.StatusInternalServerError)
}

const ErrCodeEvaluationNotFound = "evaluation_not_found"

func ErrEvaluationNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEvaluationNotFound,
		"evaluation not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeReportNotReady = "report_not_ready"

func ErrReportNotReady() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeReportNotReady,
		"the report has not been generated for this evaluation",
	).SetHttpStatusCode(http.StatusConflict)
}
