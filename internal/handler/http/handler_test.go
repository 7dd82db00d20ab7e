package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/mock"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// handlerMocks holds the service mocks behind a handler built by newMockedHandler.
type handlerMocks struct {
	auth    *mock.MockAuthService
	entries *mock.MockRemoteEntryService
	info    *mock.MockAppInfoService
}

// newMockedHandler wires mocked services into a Handler. The entry service
// mock sits behind the real validation wrapper so ownership checks run.
func newMockedHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := handlerMocks{
		auth:    mock.NewMockAuthService(ctrl),
		entries: mock.NewMockRemoteEntryService(ctrl),
		info:    mock.NewMockAppInfoService(ctrl),
	}

	svcs := &service.Services{
		AuthService:        m.auth,
		RemoteEntryService: service.NewRemoteEntryValidationService().Wrap(m.entries),
		AppInfoService:     m.info,
	}

	return NewHandler(svcs, logger.Nop()), m
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svcs, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, log, h.logger)
}

// ─────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────

func TestInit_RegistersAllRoutes(t *testing.T) {
	h, m := newMockedHandler(t)
	m.info.EXPECT().GetAppVersion(gomock.Any()).Return("test").AnyTimes()
	m.info.EXPECT().CheckHealth(gomock.Any()).Return(nil).AnyTimes()
	router := h.Init()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		// empty bodies are rejected by the handler, which proves the route exists
		{http.MethodPost, "/api/auth/register", http.StatusBadRequest},
		{http.MethodPost, "/api/auth/login", http.StatusBadRequest},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/version", http.StatusOK},
		// protected routes stop at the auth middleware
		{http.MethodGet, "/api/users/u-1/entries/", http.StatusUnauthorized},
		{http.MethodPut, "/api/users/u-1/entries/e1", http.StatusUnauthorized},
		{http.MethodDelete, "/api/users/u-1/entries/e1", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	h, _ := newMockedHandler(t)
	router := h.Init()

	// only GET is registered
	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_TraceIDHeaderIsEchoed(t *testing.T) {
	h, m := newMockedHandler(t)
	m.info.EXPECT().GetAppVersion(gomock.Any()).Return("test")
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}

func TestInit_PanicIsRecovered(t *testing.T) {
	h, m := newMockedHandler(t)
	m.info.EXPECT().GetAppVersion(gomock.Any()).DoAndReturn(func(any) string {
		panic("boom")
	})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { router.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
