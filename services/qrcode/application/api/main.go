package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/qrcodeapp/services/qrcode/application/handlers"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

// QRCodeRoutes registers the authenticated QR code endpoints. The router
// passed in must already run the tenant middleware.
func QRCodeRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/qrcodes", func(r chi.Router) {
		r.Post("/", handlers.NewPostQRCodeHandler(svcs).Execute)
		r.Get("/", handlers.NewListQRCodesHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetQRCodeHandler(svcs).Execute)
		r.Patch("/{id}", handlers.NewPatchQRCodeHandler(svcs).Execute)
		r.Delete("/{id}", handlers.NewDeleteQRCodeHandler(svcs).Execute)
	})
}

// PublicRoutes registers the unauthenticated QR code endpoints.
func PublicRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Get("/qrcodes/{id}/image", handlers.NewQRCodeImageHandler(svcs).Execute)
}
