package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps domain error categories onto HTTP status codes. Anything
// uncategorised is a 500 and gets logged; categorised failures are the
// caller's problem and only surface in the response body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStateConflict):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		logger.Error("internal error", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
