// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is installed as the MethodNotAllowed handler of router.
// A path served with a method it does not support answers 404 rather than
// 405, so callers cannot probe which routes exist. Parameterised patterns
// such as /api/users/{userID}/entries/{id} are resolved through
// [chi.Mux.Match].
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
