// Package respond writes JSON responses and the shared error envelope.
//
// Every API error carries a stable machine-readable code alongside the
// human-readable message:
//
//	{ "error": { "code": "invalid_state", "message": "claim already reviewed" } }
//
// Handlers map domain sentinel errors onto these codes; the codes are part
// of the API contract, the messages are not.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Stable error codes surfaced to API clients.
const (
	CodeValidation        = "validation_error"
	CodeNotFound          = "not_found"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeInvalidState      = "invalid_state"
	CodeEventFull         = "event_full"
	CodeAlreadyRegistered = "already_registered"
	CodeNotRegistered     = "not_registered"
	CodeInternal          = "internal_error"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// ValidationError writes a 400 with the validation_error code.
func ValidationError(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CodeValidation, message)
}

// NotFound writes a 404 with the not_found code.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CodeNotFound, message)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, "sign in required")
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, CodeForbidden, message)
}

// InternalError logs err and writes a generic 500 so internals never leak
// to API clients.
func InternalError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op, zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, CodeInternal, "internal error")
}
