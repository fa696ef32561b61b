package team

import (
	"net/http"

	"github.com/hackside/backend/srvcerror"
)

const ErrCodeTeamNotFound = "team_not_found"

func newErrTeamNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamNotFound,
		"team not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTeamNameEmpty = "team_name_empty"

func newErrTeamNameEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamNameEmpty,
		"team name must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadyInTeam = "already_in_team"

func newErrAlreadyInTeam() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyInTeam,
		"already registered in a team for this event",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeTeamLimitReached = "team_limit_reached"

func newErrTeamLimitReached() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamLimitReached,
		"the event has reached its maximum number of teams",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeRequestAlreadySent = "request_already_sent"

func newErrRequestAlreadySent() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRequestAlreadySent,
		"a pending join request already exists for this event",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeRequestNotPending = "request_not_pending"

func newErrRequestNotPending() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRequestNotPending,
		"join request not found or no longer pending",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTeamFull = "team_full"

func newErrTeamFull() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamFull,
		"the team has reached its maximum size",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotTeamLeader = "not_team_leader"

func newErrNotTeamLeader() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotTeamLeader,
		"only the team leader may perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeNotAllowed = "not_allowed"

func newErrNotAllowed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAllowed,
		"not allowed to perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeTeamNotInEvent = "team_not_in_event"

func newErrTeamNotInEvent() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamNotInEvent,
		"the team does not belong to this event",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
