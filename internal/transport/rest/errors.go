package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Error ErrorPayload `json:"error"`
}

// ErrorPayload carries a machine-readable kind, a human-readable message and,
// for validation failures, the offending fields.
type ErrorPayload struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageForKind(kind domain.Kind) string {
	switch kind {
	case domain.KindUnauthenticated:
		return "unauthorized"
	case domain.KindNotFound:
		return "not found"
	case domain.KindValidation:
		return "validation failed"
	default:
		return "internal error"
	}
}

// writeDomainError maps err onto one of the four caller-visible kinds.
// Internal details never reach the response body.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := domain.ErrorKind(err)
	payload := ErrorPayload{
		Code:    kind.String(),
		Message: messageForKind(kind),
	}

	var ve *domain.ValidationError
	if kind == domain.KindValidation && errors.As(err, &ve) {
		payload.Fields = ve.Errors
	}

	if kind == domain.KindInternal {
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	}

	writeJSON(w, statusForKind(kind), ErrorResponse{Error: payload})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
