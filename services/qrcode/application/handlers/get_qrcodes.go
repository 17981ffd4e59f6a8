package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

// ListQRCodesHandler handles GET /qrcodes requests.
type ListQRCodesHandler struct {
	svc *appsvcs.Services
}

func NewListQRCodesHandler(svc *appsvcs.Services) *ListQRCodesHandler {
	return &ListQRCodesHandler{svc: svc}
}

// Execute lists the authenticated shop's QR codes.
//
//	@Summary	List QR codes
//	@Tags		qrcodes
//	@Security		SessionToken
//	@Produce	json
//	@Success	200	{array}		appsvcs.QRCodeView
//	@Failure	401	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Failure	502	{object}	RemoteErrorResponse
//	@Router		/qrcodes [get]
func (h *ListQRCodesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}

	codes, err := h.svc.QRCode.List(r.Context(), t.ShopDomain)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	views, err := h.svc.Formatter.Format(r.Context(), t, codes)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, views)
}
