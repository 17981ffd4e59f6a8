package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
)

// ErrorResponse is returned on validation and auth failures.
type ErrorResponse struct {
	Error  string            `json:"error" example:"Validation failed"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RemoteErrorResponse carries the Admin API's own error list.
type RemoteErrorResponse struct {
	Error   string `json:"error" example:"Upstream Shopify request failed"`
	Details any    `json:"details,omitempty"`
}

func tenant(w http.ResponseWriter, r *http.Request) (auth.Tenant, bool) {
	t, err := auth.TenantFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return auth.Tenant{}, false
	}
	return t, true
}

// writeData relays the remote "data" payload unchanged.
func writeData(w http.ResponseWriter, data json.RawMessage, err error) {
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}
