package dto

// UpdateCreditsRequest is the body of POST /api/update-credits. Credits is a
// signed delta and must be present.
type UpdateCreditsRequest struct {
	UserID  string   `json:"userId" validate:"required"`
	Credits *float64 `json:"credits" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
