package handlers

import (
	"net/http"

	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	catalogsvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
)

// UpdateProductTitleRequest is the body of PATCH /products/edit and POST /products/tests.
type UpdateProductTitleRequest struct {
	ProductID string `json:"productId" validate:"required,gid=Product" example:"gid://shopify/Product/7513594282178"`
	Title     string `json:"title" validate:"required,max=255" example:"Winter snowboard"`
} // @name UpdateProductTitleRequest

// UpdateProductTitleHandler renames a product.
type UpdateProductTitleHandler struct {
	svc *catalogsvcs.Services
}

func NewUpdateProductTitleHandler(svc *catalogsvcs.Services) *UpdateProductTitleHandler {
	return &UpdateProductTitleHandler{svc: svc}
}

// Execute updates a product title.
//
//	@Summary		Rename product
//	@Description	Sets the title of one product. The body names the product (productId, a Product global id) and the new title; both are required
//	@Tags		catalog
//	@Security		SessionToken
//	@Accept		json
//	@Produce	json
//	@Param		request	body		UpdateProductTitleRequest	true	"Product and new title"
//	@Success	200		{object}	object						"Admin API data"
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	502		{object}	RemoteErrorResponse
//	@Router		/products/edit [patch]
//	@Router		/products/tests [post]
func (h *UpdateProductTitleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateProductTitleRequest](w, r)
	if !ok {
		return
	}

	data, err := h.svc.Catalog.RenameProduct(r.Context(), t, req.ProductID, req.Title)
	writeData(w, data, err)
}
