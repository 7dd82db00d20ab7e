package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	validToken  = "valid.jwt"
	entriesPath = "/api/users/u-1/entries/"
)

// newAuthorizedRouter returns the full router with a token for user u-1
// accepted by the auth middleware.
func newAuthorizedRouter(t *testing.T) (http.Handler, handlerMocks) {
	t.Helper()

	h, m := newMockedHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), validToken).Return(models.Token{UserID: "u-1"}, nil).AnyTimes()

	return h.Init(), m
}

func authorized(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+validToken)
	return req
}

var storedRecord = models.RemoteRecord{
	ID:               "e1",
	EncryptedPayload: "Y3Q=.aXY=",
	UpdatedAt:        1000,
	ServerUpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

// ─────────────────────────────────────────────
// listEntries
// ─────────────────────────────────────────────

func TestListEntries(t *testing.T) {
	router, m := newAuthorizedRouter(t)
	m.entries.EXPECT().ListEntries(gomock.Any(), "u-1").Return([]models.RemoteRecord{storedRecord}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(http.MethodGet, entriesPath, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []models.RemoteDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "Y3Q=.aXY=", got[0].EncryptedData)
	assert.Equal(t, int64(1000), got[0].UpdatedAt)
	assert.True(t, storedRecord.ServerUpdatedAt.Equal(got[0].ServerUpdatedAt))
}

func TestListEntries_EmptyCollectionIsArray(t *testing.T) {
	router, m := newAuthorizedRouter(t)
	m.entries.EXPECT().ListEntries(gomock.Any(), "u-1").Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(http.MethodGet, entriesPath, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListEntries_ForeignUserIsForbidden(t *testing.T) {
	router, _ := newAuthorizedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(http.MethodGet, "/api/users/u-2/entries/", ""))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, app.MsgAccessDenied, strings.TrimSpace(rec.Body.String()))
}

func TestListEntries_StorageError(t *testing.T) {
	router, m := newAuthorizedRouter(t)
	m.entries.EXPECT().ListEntries(gomock.Any(), "u-1").Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(http.MethodGet, entriesPath, ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, app.MsgInternalServerError, strings.TrimSpace(rec.Body.String()))
}

// ─────────────────────────────────────────────
// putEntry
// ─────────────────────────────────────────────

func TestPutEntry(t *testing.T) {
	incoming := models.RemoteRecord{ID: "e1", EncryptedPayload: "Y3Q=.aXY=", UpdatedAt: 1000}

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(m handlerMocks)
		wantStatus int
		wantBody   string
	}{
		{
			name: "stored",
			path: entriesPath + "e1",
			body: `{"id":"e1","encryptedData":"Y3Q=.aXY=","updatedAt":1000}`,
			setup: func(m handlerMocks) {
				m.entries.EXPECT().PutEntry(gomock.Any(), "u-1", incoming).Return(storedRecord, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "id taken from path",
			path: entriesPath + "e1",
			body: `{"encryptedData":"Y3Q=.aXY=","updatedAt":1000}`,
			setup: func(m handlerMocks) {
				m.entries.EXPECT().PutEntry(gomock.Any(), "u-1", incoming).Return(storedRecord, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "id mismatch",
			path:       entriesPath + "e1",
			body:       `{"id":"e2","encryptedData":"Y3Q=.aXY=","updatedAt":1000}`,
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgEntryIDMismatch,
		},
		{
			name:       "invalid json",
			path:       entriesPath + "e1",
			body:       `{"id":`,
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name:       "empty payload",
			path:       entriesPath + "e1",
			body:       `{"id":"e1","encryptedData":"","updatedAt":1000}`,
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgNoEntryDataProvided,
		},
		{
			name:       "foreign user",
			path:       "/api/users/u-2/entries/e1",
			body:       `{"id":"e1","encryptedData":"Y3Q=.aXY=","updatedAt":1000}`,
			setup:      func(m handlerMocks) {},
			wantStatus: http.StatusForbidden,
			wantBody:   app.MsgAccessDenied,
		},
		{
			name: "storage error",
			path: entriesPath + "e1",
			body: `{"id":"e1","encryptedData":"Y3Q=.aXY=","updatedAt":1000}`,
			setup: func(m handlerMocks) {
				m.entries.EXPECT().PutEntry(gomock.Any(), "u-1", incoming).Return(models.RemoteRecord{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newAuthorizedRouter(t)
			tt.setup(m)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authorized(http.MethodPut, tt.path, tt.body))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
				return
			}

			var got models.RemoteDocument
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "e1", got.ID)
			assert.False(t, got.ServerUpdatedAt.IsZero())
		})
	}
}

// ─────────────────────────────────────────────
// deleteEntry
// ─────────────────────────────────────────────

func TestDeleteEntry(t *testing.T) {
	router, m := newAuthorizedRouter(t)
	m.entries.EXPECT().DeleteEntry(gomock.Any(), "u-1", "e1").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(http.MethodDelete, entriesPath+"e1", ""))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteEntry_NoContentIsNotCompressed(t *testing.T) {
	router, m := newAuthorizedRouter(t)
	m.entries.EXPECT().DeleteEntry(gomock.Any(), "u-1", "e1").Return(nil)

	req := authorized(http.MethodDelete, entriesPath+"e1", "")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestDeleteEntry_Errors(t *testing.T) {
	t.Run("foreign user", func(t *testing.T) {
		router, _ := newAuthorizedRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authorized(http.MethodDelete, "/api/users/u-2/entries/e1", ""))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		router, m := newAuthorizedRouter(t)
		m.entries.EXPECT().DeleteEntry(gomock.Any(), "u-1", "e1").Return(errors.New("db down"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authorized(http.MethodDelete, entriesPath+"e1", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
