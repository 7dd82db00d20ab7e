package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

// errorResponse is the status and plain-text body sent for a known error.
// Bodies are the app.Msg* constants the client matches on.
type errorResponse struct {
	status  int
	message string
}

var errorResponseMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	service.ErrTokenIsExpired:          {http.StatusUnauthorized, app.MsgTokenIsExpired},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrTokenCreationFailed:     {http.StatusInternalServerError, app.MsgTokenCreationFailed},

	service.ErrValidationNoUserID:     {http.StatusBadRequest, app.MsgNoUserIDProvided},
	service.ErrValidationNoEntryID:    {http.StatusBadRequest, app.MsgNoEntryIDProvided},
	service.ErrValidationNoEntryData:  {http.StatusBadRequest, app.MsgNoEntryDataProvided},
	service.ErrValidationEntryIDMatch: {http.StatusBadRequest, app.MsgEntryIDMismatch},

	service.ErrUnauthorizedAccessToDifferentUserData: {http.StatusForbidden, app.MsgAccessDenied},
	service.ErrServiceUnavailable:                    {http.StatusServiceUnavailable, app.MsgServiceUnavailable},

	store.ErrLoginAlreadyExists: {http.StatusConflict, app.MsgLoginAlreadyExists},
	store.ErrNoUserWasFound:     {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
}

func responseFromError(err error) errorResponse {
	for target, response := range errorResponseMap {
		if errors.Is(err, target) {
			return response
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError answers with the response mapped from err. Unmapped errors get
// status 500 and fallback as the body, or the generic message when fallback
// is empty.
func writeError(w http.ResponseWriter, err error, fallback string) {
	response := responseFromError(err)
	if response.status == http.StatusInternalServerError && fallback != "" {
		response.message = fallback
	}
	http.Error(w, response.message, response.status)
}
