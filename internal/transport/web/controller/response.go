package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/americanadages/adages-society/internal/domain"
)

// Envelope is the shape of every JSON API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Validate checks that exactly one of data or error is meaningful for the envelope's outcome.
func (e Envelope[T]) Validate() error {
	if e.Success {
		if e.Error != "" {
			return errors.New("successful response carries an error")
		}
		return nil
	}
	if e.Error == "" {
		return errors.New("failed response without an error message")
	}
	if e.Data != nil {
		return errors.New("failed response carries data")
	}
	return nil
}

func writeSuccess[T any](w http.ResponseWriter, r *http.Request, status int, data T) {
	writeEnvelope(w, r, status, Envelope[T]{Success: true, Data: &data})
}

// WriteError writes a failed envelope with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeEnvelope(w, r, status, Envelope[struct{}]{Success: false, Error: message})
}

func writeEnvelope[T any](w http.ResponseWriter, r *http.Request, status int, env Envelope[T]) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	if err := env.Validate(); err != nil {
		logger.ErrorContext(ctx, "refusing to write invalid response envelope", "error", err)
		env = Envelope[T]{Success: false, Error: http.StatusText(http.StatusInternalServerError)}
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
