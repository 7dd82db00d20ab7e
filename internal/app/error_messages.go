// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-finance-keeper server handlers and the client error mapping.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// The client matches on them to restore typed errors, so the wording is part
// of the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgTokenCreationFailed is returned when the server cannot sign a token
	// for an authenticated user.
	MsgTokenCreationFailed = "token creation failed"

	// MsgNoUserIDProvided is returned when a handler requires a user ID (e.g.
	// extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgNoEntryIDProvided is returned when an entry request has a blank id.
	MsgNoEntryIDProvided = "no entry ID provided"

	// MsgNoEntryDataProvided is returned when a PUT body carries no
	// encrypted data or no updatedAt.
	MsgNoEntryDataProvided = "no entry data provided"

	// MsgEntryIDMismatch is returned when the id in the body differs from
	// the id in the path.
	MsgEntryIDMismatch = "entry ID in body does not match path"

	// MsgAccessDenied is returned when the authenticated user attempts to
	// access or modify a collection that belongs to a different user.
	MsgAccessDenied = "access denied"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgServiceUnavailable is returned by the health endpoint when the
	// database cannot be reached.
	MsgServiceUnavailable = "service unavailable"
)
