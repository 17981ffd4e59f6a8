package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error  string            `json:"error" example:"Validation failed"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// RemoteErrorResponse is returned when the Admin API rejects a call.
type RemoteErrorResponse struct {
	Error   string `json:"error" example:"Upstream Shopify request failed"`
	Details any    `json:"details,omitempty"`
} // @name RemoteErrorResponse

// tenant resolves the authenticated shop or writes a 401.
func tenant(w http.ResponseWriter, r *http.Request) (auth.Tenant, bool) {
	t, err := auth.TenantFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return auth.Tenant{}, false
	}
	return t, true
}

// qrCodeID parses the {id} path parameter. A malformed id cannot match any
// stored code, so it is answered like a missing one.
func qrCodeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Empty(w, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}
