// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusNoContent)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNoContent, w.Status())
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Write([]byte("hello "))
	w.Write([]byte("world"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_StatusWithoutWrites(t *testing.T) {
	w := &responseWriter{ResponseWriter: httptest.NewRecorder()}

	assert.Zero(t, w.status)
	assert.Equal(t, http.StatusOK, w.Status())
}

func TestResponseWriter_HeadersReachUnderlyingWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Header().Set("X-Trace-ID", "t-1")

	assert.Equal(t, "t-1", rec.Header().Get("X-Trace-ID"))
}
