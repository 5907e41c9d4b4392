package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sclayai/proposal-intake/internal/usecase"
)

type ErrorResponse struct {
	Success bool                `json:"success"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// statusFor maps a use case error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusUnprocessableEntity
	case usecase.CodeMissingID, usecase.CodeInvalidKind:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeUseCaseError renders a DomainError or TechnicalError. Anything else is
// an unexpected failure and its message is not exposed.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Code), ErrorResponse{Code: de.Code, Message: de.Message, Errors: de.Fields})
		return
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeJSON(w, statusFor(te.Code), ErrorResponse{Code: te.Code, Message: te.Message})
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
}
