package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveLogged runs next behind withLogging with a logger writing to a buffer
// and returns the decoded access log line.
func serveLogged(t *testing.T, next http.Handler) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	l := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodPut, "/api/users/u-1/entries/e1", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	h := newBareHandler()
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, body: "ok", wantLevel: "info"},
		{name: "client error", status: http.StatusForbidden, body: "access denied", wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, body: "internal server error", wantLevel: "error"},
		{name: "no content", status: http.StatusNoContent, wantLevel: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := serveLogged(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, http.MethodPut, line["method"])
			assert.Equal(t, "/api/users/u-1/entries/e1", line["uri"])
			assert.EqualValues(t, tt.status, line["status"])
			assert.EqualValues(t, len(tt.body), line["size"])
			assert.Contains(t, line, "duration")
		})
	}
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	line := serveLogged(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.EqualValues(t, http.StatusOK, line["status"])
	assert.EqualValues(t, 0, line["size"])
}

func TestLevelForStatus(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, levelForStatus(http.StatusCreated))
	assert.Equal(t, zerolog.InfoLevel, levelForStatus(http.StatusNotModified))
	assert.Equal(t, zerolog.WarnLevel, levelForStatus(http.StatusNotFound))
	assert.Equal(t, zerolog.ErrorLevel, levelForStatus(http.StatusServiceUnavailable))
}
