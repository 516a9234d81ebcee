package handler

import (
	"net/http"

	"somnolent/internal/api/v1/dto"
	"somnolent/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const updateCreditsFailedMsg = "Failed to update credits"

type CreditsHandler struct {
	creditSvc service.CreditService
	validate  *validator.Validate
	logger    zerolog.Logger
}

func NewCreditsHandler(creditSvc service.CreditService, v *validator.Validate, logger zerolog.Logger) *CreditsHandler {
	return &CreditsHandler{creditSvc: creditSvc, validate: v, logger: logger}
}

func (h *CreditsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/update-credits", h.UpdateCredits)
}

// UpdateCredits godoc
// @Summary Apply a signed delta to a user's credit balance
// @Tags credits
// @Accept json
// @Produce json
// @Param credits body dto.UpdateCreditsRequest true "Credit delta"
// @Success 200 {object} dto.MessageResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to update credits"
// @Router /api/update-credits [post]
func (h *CreditsHandler) UpdateCredits(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCreditsRequest
	if !decodeAndValidate(w, r, &req, h.validate.Struct, updateCreditsFailedMsg, h.logger) {
		return
	}

	if err := h.creditSvc.UpdateCredits(r.Context(), req.UserID, *req.Credits); err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Error updating credits")
		writeError(w, http.StatusInternalServerError, updateCreditsFailedMsg, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Credits updated successfully"}, h.logger)
}
