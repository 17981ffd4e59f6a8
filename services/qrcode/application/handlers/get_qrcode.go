package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

// GetQRCodeHandler handles GET /qrcodes/{id} requests.
type GetQRCodeHandler struct {
	svc *appsvcs.Services
}

func NewGetQRCodeHandler(svc *appsvcs.Services) *GetQRCodeHandler {
	return &GetQRCodeHandler{svc: svc}
}

// Execute returns one QR code of the authenticated shop.
//
//	@Summary	Get QR code
//	@Tags		qrcodes
//	@Security		SessionToken
//	@Produce	json
//	@Param		id	path		string	true	"QR code ID"	format(uuid)
//	@Success	200	{object}	appsvcs.QRCodeView
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	"QR code not found (empty body)"
//	@Failure	502	{object}	RemoteErrorResponse
//	@Router		/qrcodes/{id} [get]
func (h *GetQRCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	id, ok := qrCodeID(w, r)
	if !ok {
		return
	}

	qr, err := h.svc.QRCode.Get(r.Context(), t.ShopDomain, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	view, err := h.svc.Formatter.FormatOne(r.Context(), t, qr)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, view)
}
