package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

// UpdateQRCodeRequest is the request body for PATCH /qrcodes/{id}.
// Omitted fields keep their stored value.
type UpdateQRCodeRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitnil,min=1,max=255" example:"Summer poster"`
	ProductID    *string `json:"productId,omitempty" validate:"omitnil,min=1" example:"gid://shopify/Product/7513594282178"`
	Destination  *string `json:"destination,omitempty" validate:"omitnil,oneof=product checkout discount" example:"checkout"`
	DiscountCode *string `json:"discountCode,omitempty" validate:"omitnil,max=255" example:"SUMMER15"`
} // @name UpdateQRCodeRequest

// Patch converts the request into a domain patch.
func (req *UpdateQRCodeRequest) Patch() models.QRCodePatch {
	var p models.QRCodePatch
	if req.Title != nil {
		title := models.Title(*req.Title)
		p.Title = &title
	}
	if req.Destination != nil {
		dest := models.Destination(*req.Destination)
		p.Destination = &dest
	}
	p.ProductID = req.ProductID
	p.DiscountCode = req.DiscountCode
	return p
}

// PatchQRCodeHandler handles PATCH /qrcodes/{id} requests.
type PatchQRCodeHandler struct {
	svc *appsvcs.Services
}

func NewPatchQRCodeHandler(svc *appsvcs.Services) *PatchQRCodeHandler {
	return &PatchQRCodeHandler{svc: svc}
}

// Execute partially updates a QR code of the authenticated shop.
//
//	@Summary		Update QR code
//	@Description	Updates only the supplied fields; the merged record must still be valid
//	@Tags			qrcodes
//	@Security		SessionToken
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"QR code ID"	format(uuid)
//	@Param			request	body		UpdateQRCodeRequest	true	"Fields to change"
//	@Success		200		{object}	appsvcs.QRCodeView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		"QR code not found (empty body)"
//	@Failure		502		{object}	RemoteErrorResponse
//	@Router			/qrcodes/{id} [patch]
func (h *PatchQRCodeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	id, ok := qrCodeID(w, r)
	if !ok {
		return
	}

	if err := h.svc.QRCode.Exists(r.Context(), t.ShopDomain, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateQRCodeRequest](w, r)
	if !ok {
		return
	}

	qr, err := h.svc.QRCode.Update(r.Context(), t.ShopDomain, id, req.Patch())
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
