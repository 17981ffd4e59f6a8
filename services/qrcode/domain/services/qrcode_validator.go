// Package services contains stateless domain services for the qrcode bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/services/qrcode/domain"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

// ValidateTitle enforces business rules for Title beyond the length bounds
// checked by models.NewTitle: not blank and free of control characters.
func ValidateTitle(title models.Title) string {
	s := title.String()
	if strings.TrimSpace(s) == "" {
		return "This field is required"
	}
	if _, err := models.NewTitle(s); err != nil {
		return "Maximum length is 255"
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "Must not contain control characters"
		}
	}
	return ""
}

// ValidateQRCode checks every field rule on a fully built QR code, whether
// freshly created or the result of applying a patch. It returns a
// *domain.ValidationError listing each failing field.
func ValidateQRCode(qr *models.QRCode) error {
	if qr == nil {
		return domain.NewValidationError(map[string]string{"qrCode": "must not be nil"})
	}

	fields := make(map[string]string)

	if qr.ID == uuid.Nil {
		fields["id"] = "This field is required"
	}
	if qr.ShopDomain == "" {
		fields["shopDomain"] = "This field is required"
	}
	if msg := ValidateTitle(qr.Title); msg != "" {
		fields["title"] = msg
	}
	if strings.TrimSpace(qr.ProductID) == "" {
		fields["productId"] = "This field is required"
	}
	if !qr.Destination.Valid() {
		fields["destination"] = "Must be one of: product, checkout, discount"
	}
	if qr.Destination == models.DestinationDiscount && strings.TrimSpace(qr.DiscountCode) == "" {
		fields["discountCode"] = "This field is required"
	}
	if strings.ContainsAny(qr.DiscountCode, " \t\r\n/?#") {
		fields["discountCode"] = "Must not contain whitespace or URL delimiters"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
