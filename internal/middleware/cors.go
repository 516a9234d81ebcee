package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// CORS refuses requests whose Origin is set and not allowed, then lets rs/cors
// answer preflights and add the response headers. Requests without an Origin
// header are same-origin or server-to-server and always pass.
func CORS(allowedOrigins []string, logger zerolog.Logger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return func(next http.Handler) http.Handler {
		h := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !slices.Contains(allowedOrigins, origin) {
				logger.Warn().Str("origin", origin).Str("path", r.URL.Path).Msg("Origin not allowed by CORS")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not allowed by CORS"})
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
