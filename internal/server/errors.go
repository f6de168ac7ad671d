package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/cabinetry/pkg/errors"
	"github.com/matzehuels/cabinetry/pkg/observability"
)

// apiError is the JSON body of every non-2xx response.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRule, errors.ErrCodeInvalidConstraint,
		errors.ErrCodeInvalidCombinator, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePanelNotFound, errors.ErrCodeComponentNotFound,
		errors.ErrCodePlacementNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInsufficientHeight, errors.ErrCodeMissingRequired:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	e := apiError{Status: statusFor(code), Code: string(code), Message: errors.UserMessage(err)}
	if e.Status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		e.Message = "internal error"
	} else if cause := stderrors.Unwrap(err); cause != nil {
		e.Details = cause.Error()
	}
	if errors.IsRejection(err) {
		observability.Server().OnRejection(r.Context(), r.URL.Path, e.Code)
	}
	writeJSON(w, e.Status, e)
}

func badRequest(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
