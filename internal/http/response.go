package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finplan/internal/core"
	"finplan/internal/log"
	memory "finplan/internal/store/memory"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps engine and store errors onto HTTP statuses. The
// planner's own error taxonomy ends up as 422: the request was
// well-formed but the data cannot be analyzed.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.FromContext(r.Context())
	switch {
	case errors.Is(err, memory.ErrNotFound):
		writeError(w, http.StatusNotFound, "scenario not found")
	case errors.Is(err, core.ErrInsufficientData),
		errors.Is(err, core.ErrDegenerateInput),
		errors.Is(err, core.ErrInvalidHorizon),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrNegativeIncome),
		errors.Is(err, core.ErrEmptyMonthLabel),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidDueDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Request failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
