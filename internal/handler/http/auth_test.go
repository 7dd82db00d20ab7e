// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const credentialsBody = `{"login":"alice","password":"secret"}`

var alice = models.User{Login: "alice", Password: "secret"}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	registered := models.User{UserID: "u-1", Login: "alice"}

	tests := []struct {
		name       string
		body       string
		setup      func(m handlerMocks)
		wantStatus int
		wantBody   string
		wantAuth   string
	}{
		{
			name: "success",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), alice).Return(registered, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), registered).Return(models.Token{SignedString: "signed.jwt"}, nil)
			},
			wantStatus: http.StatusOK,
			wantAuth:   "Bearer signed.jwt",
		},
		{
			name:       "invalid json",
			body:       `{"login":`,
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "login taken",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), alice).Return(models.User{}, store.ErrLoginAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   app.MsgLoginAlreadyExists,
		},
		{
			name: "invalid credentials",
			body: `{"login":"alice"}`,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), models.User{Login: "alice"}).Return(models.User{}, service.ErrInvalidDataProvided)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "unexpected error",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), alice).Return(models.User{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgRegistrationFailed,
		},
		{
			name: "token creation failed",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().RegisterUser(gomock.Any(), alice).Return(registered, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), registered).Return(models.Token{}, service.ErrTokenCreationFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgTokenCreationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			tt.setup(m)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			assert.Equal(t, tt.wantAuth, rec.Header().Get("Authorization"))
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin(t *testing.T) {
	found := models.User{UserID: "u-1", Login: "alice"}

	tests := []struct {
		name       string
		body       string
		setup      func(m handlerMocks)
		wantStatus int
		wantBody   string
		wantAuth   string
	}{
		{
			name: "success",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().Login(gomock.Any(), alice).Return(found, nil)
				m.auth.EXPECT().CreateToken(gomock.Any(), found).Return(models.Token{SignedString: "signed.jwt"}, nil)
			},
			wantStatus: http.StatusOK,
			wantAuth:   "Bearer signed.jwt",
		},
		{
			name:       "invalid json",
			body:       "not json",
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name: "wrong password",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().Login(gomock.Any(), alice).Return(models.User{}, service.ErrWrongPassword)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgInvalidLoginPassword,
		},
		{
			// unknown logins look exactly like wrong passwords
			name: "unknown login",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().Login(gomock.Any(), alice).Return(models.User{}, store.ErrNoUserWasFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgInvalidLoginPassword,
		},
		{
			name: "unexpected error",
			body: credentialsBody,
			setup: func(m handlerMocks) {
				m.auth.EXPECT().Login(gomock.Any(), alice).Return(models.User{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			tt.setup(m)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			assert.Equal(t, tt.wantAuth, rec.Header().Get("Authorization"))
		})
	}
}
