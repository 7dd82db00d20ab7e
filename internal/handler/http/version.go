package http

import (
	"net/http"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// health answers 200 while the storage is reachable. Clients use it as the
// connectivity probe.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.CheckHealth(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.health").Msg("health check failed")
		writeError(w, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
