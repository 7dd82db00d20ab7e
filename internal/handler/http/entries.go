// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-finance-keeper/internal/app"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/go-chi/chi/v5"
)

// listEntries returns every document of the user as a JSON array.
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")

	records, err := h.services.RemoteEntryService.ListEntries(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listEntries").Str("user_id", userID).Msg("error listing entries")
		writeError(w, err, "")
		return
	}

	documents := make([]models.RemoteDocument, 0, len(records))
	for _, record := range records {
		documents = append(documents, record.ToDocument())
	}

	utils.WriteJSON(w, documents, http.StatusOK)
}

// putEntry creates or replaces one document. The path id is authoritative;
// a body id, when present, has to match it.
func (h *Handler) putEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "id")

	var document models.RemoteDocument
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		log.Err(err).Str("func", "*Handler.putEntry").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if document.ID == "" {
		document.ID = id
	}
	if document.ID != id {
		log.Warn().Str("func", "*Handler.putEntry").Str("path_id", id).Str("body_id", document.ID).Msg("entry id mismatch")
		http.Error(w, app.MsgEntryIDMismatch, http.StatusBadRequest)
		return
	}

	stored, err := h.services.RemoteEntryService.PutEntry(ctx, userID, document.ToRecord())
	if err != nil {
		log.Err(err).Str("func", "*Handler.putEntry").Str("id", id).Msg("error saving entry")
		writeError(w, err, "")
		return
	}

	utils.WriteJSON(w, stored.ToDocument(), http.StatusOK)
}

// deleteEntry removes one document. Removing a missing document succeeds.
func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")
	id := chi.URLParam(r, "id")

	if err := h.services.RemoteEntryService.DeleteEntry(ctx, userID, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteEntry").Str("id", id).Msg("error deleting entry")
		writeError(w, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
