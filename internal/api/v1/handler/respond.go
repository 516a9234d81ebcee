package handler

import (
	"encoding/json"
	"net/http"

	"somnolent/internal/api/v1/dto"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, logger zerolog.Logger) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg}, logger)
}

// decodeAndValidate reads a JSON body into dst and runs the struct validator.
// Bad input is not reported back to the caller: the detail is logged and the
// handler's own failure body goes out with a 500, same as a downstream error.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, v validatorFunc, failMsg string, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Invalid JSON payload")
		writeError(w, http.StatusInternalServerError, failMsg, logger)
		return false
	}
	if err := v(dst); err != nil {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request validation failed")
		writeError(w, http.StatusInternalServerError, failMsg, logger)
		return false
	}
	return true
}

type validatorFunc func(interface{}) error
