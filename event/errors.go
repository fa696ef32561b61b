package event

import (
	"net/http"

	"github.com/hackside/backend/srvcerror"
)

const ErrCodeEventNotFound = "event_not_found"

func newErrEventNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEventNotFound,
		"event not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeEventNameEmpty = "event_name_empty"

func newErrEventNameEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEventNameEmpty,
		"event name must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeDeadlineAfterEvent = "deadline_after_event"

func newErrDeadlineAfterEvent() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeDeadlineAfterEvent,
		"registration deadline must be before the event date",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidTeamBounds = "invalid_team_bounds"

func newErrInvalidTeamBounds() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTeamBounds,
		"team size bounds are invalid",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNotOrganizer = "not_event_organizer"

func newErrNotOrganizer() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotOrganizer,
		"only the event organizer may perform this action",
	).SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeUnsupportedImage = "unsupported_image_format"

func newErrUnsupportedImage() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnsupportedImage,
		"only JPEG and PNG images are supported",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func newErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
