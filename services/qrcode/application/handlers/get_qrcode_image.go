package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

const (
	qrImageSize   = 512
	qrImageMaxAge = 24 * time.Hour
)

// QRCodeImageHandler handles the public GET /qrcodes/{id}/image route.
// The image only encodes the scan URL, so no store lookup is needed.
type QRCodeImageHandler struct {
	svc *appsvcs.Services
}

func NewQRCodeImageHandler(svc *appsvcs.Services) *QRCodeImageHandler {
	return &QRCodeImageHandler{svc: svc}
}

// Execute renders the QR code PNG.
//
//	@Summary	QR code image
//	@Tags		qrcodes
//	@Produce	png
//	@Param		id	path		string	true	"QR code ID"	format(uuid)
//	@Success	200	{file}		binary
//	@Failure	400	{object}	ErrorResponse
//	@Router		/qrcodes/{id}/image [get]
func (h *QRCodeImageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid qr code id")
		return
	}

	png, err := qrcode.Encode(h.svc.Formatter.ScanURL(id.String()), qrcode.Medium, qrImageSize)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.Blob(w, "image/png", png, qrImageMaxAge)
}
