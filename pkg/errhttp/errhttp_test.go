package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
	"github.com/ghuser/qrcodeapp/pkg/validator"
	qrdomain "github.com/ghuser/qrcodeapp/services/qrcode/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrUnauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized},
		{"ErrQRCodeNotFound", qrdomain.ErrQRCodeNotFound, http.StatusNotFound},
		{"ErrQRCodeAlreadyExists", qrdomain.ErrQRCodeAlreadyExists, http.StatusConflict},
		{"ErrInvalidQRCode", qrdomain.ErrInvalidQRCode, http.StatusBadRequest},
		{"validation error", qrdomain.NewValidationError(map[string]string{"title": "This field is required"}), http.StatusBadRequest},
		{"request field errors", fmt.Errorf("bind: %w", validator.FieldErrors{"first": "Must be a numeric value"}), http.StatusBadRequest},
		{"remote api error", &shopify.APIError{Operation: "ListDiscounts", StatusCode: 500}, http.StatusBadGateway},
		{"wrapped ErrQRCodeNotFound", fmt.Errorf("get qr code: %w", qrdomain.ErrQRCodeNotFound), http.StatusNotFound},
		{"wrapped remote error", fmt.Errorf("format: %w", &shopify.APIError{Operation: "ProductsByIDs"}), http.StatusBadGateway},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_NotFoundHasEmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("delete: %w", qrdomain.ErrQRCodeNotFound))

	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, qrdomain.NewValidationError(map[string]string{"discountCode": "This field is required"}))

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body.Error != "Validation failed" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Fields["discountCode"] == "" {
		t.Errorf("expected discountCode field error, got %v", body.Fields)
	}
}

func TestWriteError_RemoteDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, &shopify.APIError{
		Operation:  "ListDiscounts",
		StatusCode: http.StatusOK,
		Details:    json.RawMessage(`[{"message":"Access denied"}]`),
	})

	var body struct {
		Error   string           `json:"error"`
		Details []map[string]any `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body.Error == "" {
		t.Error("missing error message")
	}
	if len(body.Details) != 1 || body.Details[0]["message"] != "Access denied" {
		t.Errorf("details = %v", body.Details)
	}
}

func TestWriteError_MasksInternalErrorsInProduction(t *testing.T) {
	SetProduction(true)
	t.Cleanup(func() { SetProduction(false) })

	w := httptest.NewRecorder()
	WriteError(w, errors.New("pq: connection refused to 10.0.0.3"))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected masked message, got %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, auth.ErrUnauthenticated)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
