package handler

import (
	"net/http"

	"somnolent/internal/api/v1/dto"
	"somnolent/internal/model"
	"somnolent/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const checkoutFailedMsg = "Failed to create checkout session"

// CheckoutHandler handles credit purchase endpoints.
type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutSvc service.CheckoutService, v *validator.Validate, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, validate: v, logger: logger}
}

// RegisterRoutes registers the checkout endpoints.
func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/create-checkout-session", h.CreateCheckoutSession)
}

// CreateCheckoutSession godoc
// @Summary Create a Stripe Checkout session for a credit purchase
// @Description Opens a one-time payment session; the success redirect carries the credits to grant (twice the purchased quantity).
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutSessionRequest true "Checkout session request"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to create checkout session"
// @Router /api/create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutSessionRequest
	if !decodeAndValidate(w, r, &req, h.validate.Struct, checkoutFailedMsg, h.logger) {
		return
	}

	sess, err := h.checkoutSvc.CreateCheckoutSession(r.Context(), model.CheckoutRequest{
		UserID:  req.UserID,
		Amount:  req.Amount,
		Credits: req.Credits,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Error creating checkout session")
		writeError(w, http.StatusInternalServerError, checkoutFailedMsg, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckoutSessionResponse{ID: sess.ID}, h.logger)
}
