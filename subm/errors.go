package subm

import (
	"net/http"

	"github.com/hackside/backend/srvcerror"
)

const ErrCodeNotInTeam = "not_in_team"

func newErrNotInTeam() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotInTeam,
		"you are not part of any team for this event",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadySubmitted = "already_submitted"

func newErrAlreadySubmitted() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadySubmitted,
		"this round already has a submission from your team",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeSubmNotFound = "submission_not_found"

func newErrSubmNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmNotFound,
		"submission not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeNotOrganizer = "not_event_organizer"

func newErrNotOrganizer() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotOrganizer,
		"only the event organizer may perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeInvalidRound = "invalid_round"

func newErrInvalidRound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRound,
		"round must be one of ppt, repo, viva",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeRepoUrlEmpty = "repo_url_empty"

func newErrRepoUrlEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRepoUrlEmpty,
		"repository URL must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
