package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

// CreateQRCodeRequest is the request body for POST /qrcodes.
type CreateQRCodeRequest struct {
	Title        string `json:"title" validate:"required,max=255" example:"Spring poster"`
	ProductID    string `json:"productId" validate:"required" example:"gid://shopify/Product/7513594282178"`
	Destination  string `json:"destination" validate:"required,oneof=product checkout discount" example:"product"`
	DiscountCode string `json:"discountCode" validate:"required_if=Destination discount,max=255" example:"SPRING10"`
} // @name CreateQRCodeRequest

// PostQRCodeHandler handles POST /qrcodes requests.
type PostQRCodeHandler struct {
	svc *appsvcs.Services
}

// NewPostQRCodeHandler returns a PostQRCodeHandler backed by the given services.
func NewPostQRCodeHandler(svc *appsvcs.Services) *PostQRCodeHandler {
	return &PostQRCodeHandler{svc: svc}
}

// Execute creates a QR code for the authenticated shop.
//
//	@Summary		Create QR code
//	@Description	Creates a QR code owned by the authenticated shop and returns it enriched with product data
//	@Tags			qrcodes
//	@Security		SessionToken
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateQRCodeRequest	true	"QR code creation request"
//	@Success		201		{object}	appsvcs.QRCodeView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		502		{object}	RemoteErrorResponse
//	@Router			/qrcodes [post]
func (h *PostQRCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateQRCodeRequest](w, r)
	if !ok {
		return
	}

	qr, err := h.svc.QRCode.Create(r.Context(), t.ShopDomain, appsvcs.CreateInput{
		Title:        req.Title,
		ProductID:    req.ProductID,
		Destination:  req.Destination,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	view, err := h.svc.Formatter.FormatOne(r.Context(), t, qr)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, view)
}
