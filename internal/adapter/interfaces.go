// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the transport to the
// go-finance-keeper remote store.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling ([ErrUnauthorized] for 401, [ErrNetwork] for an unreachable
// server).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the remote
// store. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and returns the authenticated session.
	// The bearer token is stored via SetToken.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates an existing account and returns the session.
	// The bearer token is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Ping probes the health endpoint. A nil error means the remote store is
	// reachable.
	Ping(ctx context.Context) error

	// Put creates or replaces the document record.ID of userID.
	Put(ctx context.Context, userID string, record models.RemoteRecord) error

	// Delete removes the document id of userID. Deleting a missing document
	// succeeds.
	Delete(ctx context.Context, userID, id string) error

	// GetAll returns every document of userID.
	GetAll(ctx context.Context, userID string) ([]models.RemoteRecord, error)
}
