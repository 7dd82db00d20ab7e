package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError turns a non-2xx answer into a sentinel from errors.go with the
// response body attached. Gateway failures and throttling count as network
// errors so the sync engine retries them.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w: %s", ErrNetwork, ErrBadGateway, body)
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", ErrNetwork, code, body)
	}

	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	return fmt.Errorf("http %d: %s", code, body)
}

// transportError wraps a failure of the round trip itself.
func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrNetwork, op, err)
}
