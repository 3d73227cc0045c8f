package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"go.uber.org/zap"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			write:      func(w http.ResponseWriter) { respond.ValidationError(w, "bad input") },
			wantStatus: http.StatusBadRequest,
			wantCode:   respond.CodeValidation,
		},
		{
			name:       "not found",
			write:      func(w http.ResponseWriter) { respond.NotFound(w, "missing") },
			wantStatus: http.StatusNotFound,
			wantCode:   respond.CodeNotFound,
		},
		{
			name:       "unauthorized",
			write:      func(w http.ResponseWriter) { respond.Unauthorized(w) },
			wantStatus: http.StatusUnauthorized,
			wantCode:   respond.CodeUnauthorized,
		},
		{
			name:       "forbidden",
			write:      func(w http.ResponseWriter) { respond.Forbidden(w, "no") },
			wantStatus: http.StatusForbidden,
			wantCode:   respond.CodeForbidden,
		},
		{
			name: "conflict with domain code",
			write: func(w http.ResponseWriter) {
				respond.Error(w, http.StatusConflict, respond.CodeEventFull, "event is full")
			},
			wantStatus: http.StatusConflict,
			wantCode:   respond.CodeEventFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			code, _ := decodeEnvelope(t, rec)
			if code != tt.wantCode {
				t.Errorf("code: got %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.InternalError(rec, zap.NewNop(), "do thing", errors.New("mongo: socket closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	code, message := decodeEnvelope(t, rec)
	if code != respond.CodeInternal {
		t.Errorf("code: got %q", code)
	}
	if message != "internal error" {
		t.Errorf("internal details leaked: %q", message)
	}
}

func TestInternalError_NilLogger(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.InternalError(rec, nil, "do thing", errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}
