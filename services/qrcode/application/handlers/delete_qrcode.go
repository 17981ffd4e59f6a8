package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

// DeleteQRCodeHandler handles DELETE /qrcodes/{id} requests.
type DeleteQRCodeHandler struct {
	svc *appsvcs.Services
}

func NewDeleteQRCodeHandler(svc *appsvcs.Services) *DeleteQRCodeHandler {
	return &DeleteQRCodeHandler{svc: svc}
}

// Execute deletes a QR code of the authenticated shop.
//
//	@Summary	Delete QR code
//	@Tags		qrcodes
//	@Security		SessionToken
//	@Param		id	path	string	true	"QR code ID"	format(uuid)
//	@Success	200	"Deleted (empty body)"
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	"QR code not found (empty body)"
//	@Router		/qrcodes/{id} [delete]
func (h *DeleteQRCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	id, ok := qrCodeID(w, r)
	if !ok {
		return
	}

	if err := h.svc.QRCode.Delete(r.Context(), t.ShopDomain, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.Empty(w, http.StatusOK)
}
