// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end driven by [App].
type UI interface {
	// AuthFlow blocks until the user signs in. It returns tui.ErrUserQuit
	// when the user leaves instead.
	AuthFlow(ctx context.Context) (models.Session, error)

	// MainLoop shows the dashboard until the user quits or signs out.
	MainLoop(ctx context.Context, session models.Session) (logout bool, err error)
}
