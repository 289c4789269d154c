package http

import (
	"encoding/json"
	"net/http"

	apperrors "registrar/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Booking any    `json:"booking,omitempty"`
}

// WriteJSON writes data with the given status. The returned error can only be
// logged: the header has already been sent.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes the client-facing part of err. Causes wrapped inside an
// AppError are never serialized.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, message string, booking any) error {
	return WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: message,
		Booking: booking,
	})
}
