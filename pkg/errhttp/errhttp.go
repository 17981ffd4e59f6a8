// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
	"github.com/ghuser/qrcodeapp/pkg/validator"
	qrdomain "github.com/ghuser/qrcodeapp/services/qrcode/domain"
)

var production atomic.Bool

// SetProduction toggles masking of 5xx messages. Called once at startup.
func SetProduction(enabled bool) {
	production.Store(enabled)
}

// fieldErrors is implemented by validation errors that carry per-field messages.
type fieldErrors interface {
	FieldErrors() map[string]string
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	switch status {
	case http.StatusNotFound:
		httpx.Empty(w, status)
	case http.StatusBadRequest:
		body := map[string]any{"error": err.Error()}
		var fe fieldErrors
		if errors.As(err, &fe) {
			body["error"] = validator.ValidationFailed
			body["fields"] = fe.FieldErrors()
		}
		httpx.JSON(w, status, body)
	case http.StatusBadGateway:
		body := map[string]any{"error": "Upstream Shopify request failed"}
		var apiErr *shopify.APIError
		if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
			body["details"] = json.RawMessage(apiErr.Details)
		}
		httpx.JSON(w, status, body)
	default:
		httpx.JSONError(w, status, httpx.SafeError(err, status, production.Load()))
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized // 401
	case errors.Is(err, qrdomain.ErrQRCodeNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, qrdomain.ErrQRCodeAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, qrdomain.ErrInvalidQRCode):
		return http.StatusBadRequest // 400
	case errors.As(err, new(validator.FieldErrors)):
		return http.StatusBadRequest // 400
	case errors.Is(err, shopify.ErrRemoteAPI):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
