package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Str("login", user.Login).Msg("user registration failed")
		writeError(w, err, app.MsgRegistrationFailed)
		return
	}

	h.writeToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Str("login", user.Login).Msg("user login failed")
		writeError(w, err, app.MsgLoginFailed)
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")

	h.writeToken(w, r, foundUser)
}

// writeToken issues a JWT for user and returns it in the Authorization
// header with an empty 200 body.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("user_id", user.UserID).Msg("creation of token failed")
		writeError(w, err, app.MsgTokenCreationFailed)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
