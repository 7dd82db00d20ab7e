package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		wantIs  []error
		wantMsg string
	}{
		{status: http.StatusOK},
		{status: http.StatusNoContent},
		{status: http.StatusBadRequest, body: "invalid data provided", wantIs: []error{ErrBadRequest}, wantMsg: "invalid data provided"},
		{status: http.StatusUnauthorized, wantIs: []error{ErrUnauthorized}, wantMsg: "Unauthorized"},
		{status: http.StatusForbidden, wantIs: []error{ErrForbidden}},
		{status: http.StatusNotFound, wantIs: []error{ErrNotFound}},
		{status: http.StatusConflict, wantIs: []error{ErrConflict}},
		{status: http.StatusInternalServerError, wantIs: []error{ErrInternalServerError}},
		{status: http.StatusBadGateway, wantIs: []error{ErrNetwork, ErrBadGateway}},
		{status: http.StatusGatewayTimeout, wantIs: []error{ErrNetwork, ErrBadGateway}},
		{status: http.StatusTooManyRequests, wantIs: []error{ErrNetwork}, wantMsg: "http 429"},
		{status: http.StatusTeapot, wantMsg: "http 418: I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := resty.New().R().Get(srv.URL)
			require.NoError(t, err)

			got := mapHTTPError(resp)
			if tt.wantIs == nil && tt.wantMsg == "" {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			for _, want := range tt.wantIs {
				assert.ErrorIs(t, got, want)
			}
			if tt.wantIs == nil {
				assert.NotErrorIs(t, got, ErrNetwork)
			}
			assert.Contains(t, got.Error(), tt.wantMsg)
		})
	}
}
