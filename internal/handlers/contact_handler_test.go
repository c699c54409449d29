package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/caredesk/appointment-service/internal/services"
)

type stubContactService struct {
	err      error
	received *services.ContactRequest
}

func (s *stubContactService) Submit(ctx context.Context, req *services.ContactRequest) error {
	s.received = req
	return s.err
}

func postContact(t *testing.T, svc services.ContactService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewContactHandler(svc, testUtilsLogger())
	router := gin.New()
	router.POST("/api/contact", handler.Submit)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestContactSubmitSuccessShape(t *testing.T) {
	stub := &stubContactService{}
	w := postContact(t, stub, `{"name":"Jane","email":"jane@example.com","subject":"Hi","message":"Hello"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp["success"])
	}
	if resp["message"] != "Your message has been sent." {
		t.Errorf("unexpected message %q", resp["message"])
	}
	if stub.received == nil || stub.received.Name != "Jane" {
		t.Error("request not forwarded to the service")
	}
}

func TestContactSubmitValidationShape(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			"missing fields",
			services.NewBusinessRuleError("contact.required", "all required fields must be filled"),
			"All required fields must be filled.",
		},
		{
			"bad email",
			services.NewBusinessRuleError("contact.email", "invalid email address"),
			"Please enter a valid email address.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubContactService{err: tt.err}
			w := postContact(t, stub, `{"name":"x","email":"x@y.z","subject":"s","message":"m"}`)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			if resp["success"] != false {
				t.Errorf("expected success false, got %v", resp["success"])
			}
			if resp["error"] != tt.wantMsg {
				t.Errorf("expected error %q, got %q", tt.wantMsg, resp["error"])
			}
		})
	}
}

func TestContactSubmitMalformedBody(t *testing.T) {
	stub := &stubContactService{}
	w := postContact(t, stub, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if stub.received != nil {
		t.Error("malformed body must not reach the service")
	}
}
