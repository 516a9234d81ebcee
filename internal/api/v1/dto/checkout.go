package dto

// CheckoutSessionRequest is the body of POST /api/create-checkout-session.
type CheckoutSessionRequest struct {
	// Amount is the price in minor currency units.
	Amount  float64 `json:"amount" validate:"gt=0"`
	Credits float64 `json:"credits" validate:"gt=0"`
	UserID  string  `json:"userId" validate:"required"`
}

// CheckoutSessionResponse carries the provider session id back to the client.
type CheckoutSessionResponse struct {
	ID string `json:"id"`
}
