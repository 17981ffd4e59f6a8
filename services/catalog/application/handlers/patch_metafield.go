package handlers

import (
	"net/http"

	"github.com/ghuser/qrcodeapp/pkg/shopify"
	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	catalogsvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
)

// MetafieldRequest is the body of the metafield endpoints. Namespace and key
// default to my_field / liner_material.
type MetafieldRequest struct {
	ProductID string `json:"productId" validate:"required,gid=Product" example:"gid://shopify/Product/7513594282178"`
	ID        string `json:"id,omitempty" validate:"omitempty,gid=Metafield" example:"gid://shopify/Metafield/1069228937"`
	Namespace string `json:"namespace,omitempty" validate:"omitempty,min=3,max=255" example:"my_field"`
	Key       string `json:"key,omitempty" validate:"omitempty,min=2,max=64" example:"liner_material"`
	Value     string `json:"value" validate:"required,max=5000" example:"Synthetic leather"`
} // @name MetafieldRequest

func (req *MetafieldRequest) metafield() shopify.Metafield {
	return shopify.Metafield{
		ID:        req.ID,
		Namespace: req.Namespace,
		Key:       req.Key,
		Value:     req.Value,
	}
}

// SetMetafieldHandler serves both add-metafield and edit-metafield; they
// differ only in whether the body names an existing metafield id.
type SetMetafieldHandler struct {
	svc *catalogsvcs.Services
}

func NewSetMetafieldHandler(svc *catalogsvcs.Services) *SetMetafieldHandler {
	return &SetMetafieldHandler{svc: svc}
}

// Execute writes a product metafield.
//
//	@Summary	Add or edit product metafield
//	@Tags		catalog
//	@Security		SessionToken
//	@Accept		json
//	@Produce	json
//	@Param		request	body		MetafieldRequest	true	"Metafield write"
//	@Success	200		{object}	object				"Admin API data"
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	502		{object}	RemoteErrorResponse
//	@Router		/products/add-metafield [patch]
//	@Router		/products/edit-metafield [patch]
func (h *SetMetafieldHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[MetafieldRequest](w, r)
	if !ok {
		return
	}

	data, err := h.svc.Catalog.SetMetafield(r.Context(), t, req.ProductID, req.metafield())
	writeData(w, data, err)
}
