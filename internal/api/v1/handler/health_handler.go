package handler

import (
	"net/http"

	"github.com/rs/zerolog"
)

// RegisterHealthRoute mounts the liveness probe used by the hosting platform.
func RegisterHealthRoute(mux *http.ServeMux, logger zerolog.Logger) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})
}
