package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/qrcodeapp/services/catalog/application/handlers"
	catalogsvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
)

// CatalogRoutes registers the Admin API proxy endpoints. The router passed in
// must already run the tenant middleware.
func CatalogRoutes(r chi.Router, svcs *catalogsvcs.Services) {
	r.Get("/discounts", handlers.NewListDiscountsHandler(svcs).Execute)

	title := handlers.NewUpdateProductTitleHandler(svcs).Execute
	metafield := handlers.NewSetMetafieldHandler(svcs).Execute
	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.NewListProductsHandler(svcs).Execute)
		r.Patch("/edit", title)
		r.Post("/tests", title)
		r.Patch("/add-metafield", metafield)
		r.Patch("/edit-metafield", metafield)
	})
}
