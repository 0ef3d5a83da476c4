package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

func TestWriteError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", &application.Error{Kind: application.ErrValidation, Message: "Name and email are required", Details: map[string]string{"name": "is required"}}, http.StatusBadRequest, "Name and email are required"},
		{"upstream", &application.Error{Kind: application.ErrUpstream, Message: "User already registered"}, http.StatusBadRequest, "User already registered"},
		{"unauthenticated", &application.Error{Kind: application.ErrUnauthenticated, Message: "Unauthorized - invalid token"}, http.StatusUnauthorized, "Unauthorized - invalid token"},
		{"forbidden", &application.Error{Kind: application.ErrForbidden, Message: "Forbidden - admin access required"}, http.StatusForbidden, "Forbidden - admin access required"},
		{"not found wrapped", fmt.Errorf("lookup: %w", &application.Error{Kind: application.ErrNotFound, Message: "Profile not found"}), http.StatusNotFound, "Profile not found"},
		{"internal", errors.New("dial tcp 10.0.0.1:6379: connection refused"), http.StatusInternalServerError, "Failed to fetch members"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/members", nil)
			c.Set("request_id", "req-1")

			writeError(c, helpers.NopLogger(), tc.err, "Failed to fetch members")

			if w.Code != tc.code {
				t.Fatalf("code=%d want %d", w.Code, tc.code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tc.message || body["request_id"] != "req-1" {
				t.Fatalf("body=%v", body)
			}
			if !c.IsAborted() {
				t.Error("context not aborted")
			}
		})
	}
}

func TestWriteError_DetailsOnlyForValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/members", nil)

	writeError(c, helpers.NopLogger(), &application.Error{
		Kind:    application.ErrValidation,
		Message: "invalid member payload",
		Details: map[string]string{"status": "must be one of active, expired, pending"},
	}, "Failed to save member")

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "invalid member payload" || body.Details["status"] == "" {
		t.Fatalf("body=%+v", body)
	}
}
