package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/pbx-dashboard/internal/errs"
	"github.com/GregMSThompson/pbx-dashboard/pkg/helpers"
	"github.com/GregMSThompson/pbx-dashboard/pkg/logger"
)

func newHandler() *responseHandler {
	return New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
}

func request() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/dashboard", nil).WithContext(helpers.TestCtx())
}

func TestWriteSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	newHandler().WriteSuccess(rr, request(), http.StatusOK, map[string]int{"n": 1})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["n"] != 1 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestHandleError(t *testing.T) {
	var syntaxErr error
	if err := json.NewDecoder(strings.NewReader("not-json")).Decode(&struct{}{}); err != nil {
		syntaxErr = err
	}
	emptyErr := json.NewDecoder(strings.NewReader("")).Decode(&struct{}{})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("widget not found"), http.StatusNotFound, "not_found"},
		{"validation", errs.NewValidationError("layout is required"), http.StatusBadRequest, "invalid_input"},
		{"database", errs.NewDatabaseError("read", "failed", errors.New("boom")), http.StatusInternalServerError, "internal_error"},
		{"syntax", syntaxErr, http.StatusBadRequest, "invalid_input"},
		{"empty body", emptyErr, http.StatusBadRequest, "invalid_input"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newHandler().HandleError(rr, request(), tt.err)
			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}
