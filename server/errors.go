package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"product_copy_studio/feedback"
	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/session"
	"product_copy_studio/studio"
	"product_copy_studio/widget"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *form.ValidationError
	var gerr *generator.GenerationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, feedback.ErrFeedbackTooShort),
		errors.Is(err, generator.ErrUnsupportedLanguage),
		errors.Is(err, generator.ErrNoLanguages):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrNoContent):
		return http.StatusNotFound
	case errors.Is(err, studio.ErrBusy),
		errors.Is(err, session.ErrNoGeneration),
		errors.Is(err, feedback.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, widget.ErrUnknownOption),
		errors.Is(err, session.ErrUnknownWidget),
		errors.Is(err, form.ErrUnknownKind),
		errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &gerr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func bodyFor(err error) errorBody {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return errorBody{Error: "validation failed", Fields: verr.Fields}
	}
	if errors.Is(err, feedback.ErrFeedbackTooShort) {
		return errorBody{Error: feedback.TooShortMessage}
	}
	return errorBody{Error: err.Error()}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSONStatus(w, status, bodyFor(err))
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
