package handlers

import (
	"net/http"
	"strconv"

	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	catalogsvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
)

// ListProductsQuery holds the GET /products query parameters.
type ListProductsQuery struct {
	First int    `json:"first" validate:"gte=1,lte=50"`
	After string `json:"after" validate:"max=512"`
}

// ListProductsHandler handles GET /products requests.
type ListProductsHandler struct {
	svc *catalogsvcs.Services
}

func NewListProductsHandler(svc *catalogsvcs.Services) *ListProductsHandler {
	return &ListProductsHandler{svc: svc}
}

// Execute returns one page of the shop's products.
//
//	@Summary	List products
//	@Tags		catalog
//	@Security		SessionToken
//	@Produce	json
//	@Param		first	query		int		false	"Page size (1-50)"	default(2)
//	@Param		after	query		string	false	"Cursor from pageInfo.endCursor"
//	@Success	200		{object}	object	"Admin API data"
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	502		{object}	RemoteErrorResponse
//	@Router		/products [get]
func (h *ListProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant(w, r)
	if !ok {
		return
	}

	q := ListProductsQuery{First: catalogsvcs.DefaultProductPageSize, After: r.URL.Query().Get("after")}
	if raw := r.URL.Query().Get("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			pkgvalidator.WriteFieldErrors(w, pkgvalidator.FieldErrors{"first": "Must be a numeric value"})
			return
		}
		q.First = n
	}
	if err := pkgvalidator.Validate(&q); err != nil {
		pkgvalidator.WriteFieldErrors(w, pkgvalidator.FormatValidationErrors(err))
		return
	}

	data, err := h.svc.Catalog.ListProducts(r.Context(), t, q.First, q.After)
	writeData(w, data, err)
}
