package handlers

import (
	"net/http"

	catalogsvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
)

// ListDiscountsHandler handles GET /discounts requests.
type ListDiscountsHandler struct {
	svc *catalogsvcs.Services
}

func NewListDiscountsHandler(svc *catalogsvcs.Services) *ListDiscountsHandler {
	return &ListDiscountsHandler{svc: svc}
}

// Execute lists the shop's code discounts for the QR code form.
//
//	@Summary	List discounts
//	@Tags		catalog
//	@Security		SessionToken
//	@Produce	json
//	@Success	200	{object}	object	"Admin API data"
//	@Failure	401	{object}	ErrorResponse
//	@Failure	502	{object}	RemoteErrorResponse
//	@Router		/discounts [get]
func (h *ListDiscountsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}
	data, err := h.svc.Catalog.ListDiscounts(r.Context(), t)
	writeData(w, data, err)
}
