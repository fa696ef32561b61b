package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hackside/backend/auth"
	"github.com/hackside/backend/srvcerror"
)

const ErrCodeUnauthorized = "unauthorized"

func newErrUnauthorized() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorized,
		"authentication required",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeInvalidUuid = "invalid_uuid"

func newErrInvalidUuid() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidUuid,
		"malformed identifier in request path",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidRequestBody = "invalid_request_body"

func newErrInvalidRequestBody() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRequestBody,
		"request body could not be parsed",
	).SetHttpStatusCode(http.StatusBadRequest)
}

// requireClaims returns the caller's JWT claims or an error when the
// request carried no (valid) token.
func requireClaims(r *http.Request) (*auth.JwtClaims, error) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil, newErrUnauthorized()
	}
	return claims, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, newErrInvalidUuid()
	}
	return parsed, nil
}
