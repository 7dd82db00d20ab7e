// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

// adapterErrorMapping resolves one adapter status sentinel by the server's
// message. fallback is used for unknown messages; a nil fallback keeps the
// adapter error.
type adapterErrorMapping struct {
	status   error
	messages map[string]error
	fallback error
}

var adapterErrorMappings = []adapterErrorMapping{
	{
		status: adapter.ErrBadRequest,
		messages: map[string]error{
			app.MsgInvalidDataProvided: ErrInvalidDataProvided,
			app.MsgNoUserIDProvided:    ErrValidationNoUserID,
			app.MsgNoEntryIDProvided:   ErrValidationNoEntryID,
			app.MsgNoEntryDataProvided: ErrValidationNoEntryData,
			app.MsgEntryIDMismatch:     ErrValidationEntryIDMatch,
		},
		fallback: ErrInvalidDataProvided,
	},
	{
		status: adapter.ErrUnauthorized,
		messages: map[string]error{
			app.MsgInvalidLoginPassword:    ErrWrongPassword,
			app.MsgTokenIsExpired:          ErrTokenIsExpired,
			app.MsgTokenIsExpiredOrInvalid: ErrTokenIsExpiredOrInvalid,
		},
		fallback: ErrNotAuthenticated,
	},
	{
		status:   adapter.ErrForbidden,
		fallback: ErrUnauthorizedAccessToDifferentUserData,
	},
	{
		status: adapter.ErrConflict,
		messages: map[string]error{
			app.MsgLoginAlreadyExists: store.ErrLoginAlreadyExists,
		},
	},
	{
		status: adapter.ErrInternalServerError,
		messages: map[string]error{
			app.MsgRegistrationFailed:  ErrRegisterOnServer,
			app.MsgLoginFailed:         ErrLoginOnServer,
			app.MsgTokenCreationFailed: ErrTokenCreationFailed,
		},
	},
}

// mapAdapterError turns an adapter error into the matching service error.
// Network errors and anything unrecognised are returned unchanged.
func mapAdapterError(err error) error {
	if err == nil || errors.Is(err, adapter.ErrNetwork) {
		return err
	}

	body := extractBody(err)
	for _, m := range adapterErrorMappings {
		if !errors.Is(err, m.status) {
			continue
		}
		if mapped, ok := m.messages[body]; ok {
			return mapped
		}
		if m.fallback != nil {
			return m.fallback
		}
		break
	}

	return err
}

// extractBody returns the server message of an adapter error formatted as
// "<status>: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if _, body, ok := strings.Cut(msg, ": "); ok {
		return body
	}
	return msg
}

// isUnauthorized reports whether err means the session token was rejected.
func isUnauthorized(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized)
}
