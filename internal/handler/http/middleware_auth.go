package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via AuthService.ParseToken and stores the token subject in the request
// context under [utils.UserIDCtxKey]. Ownership of the {userID} path segment
// is checked later by the entry service against that value.
//
// Requests are rejected with 401 when:
//   - the header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header cannot be parsed ([ErrInvalidAuthorizationHeader], [ErrEmptyToken]);
//   - the token is expired, forged or issued by someone else.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			response := responseFromError(err)
			if response.status != http.StatusUnauthorized {
				response.status = http.StatusUnauthorized
				response.message = http.StatusText(http.StatusUnauthorized)
			}
			http.Error(w, response.message, response.status)
			return
		}

		ctx = utils.WithUserID(ctx, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from "<scheme> <token>".
//
// It returns [ErrInvalidAuthorizationHeader] when the token part is missing
// and [ErrEmptyToken] when it is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
