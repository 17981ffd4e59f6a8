package models

// Destination selects where a scanned QR code sends the customer.
type Destination string

const (
	DestinationProduct  Destination = "product"
	DestinationCheckout Destination = "checkout"
	DestinationDiscount Destination = "discount"
)

// Valid reports whether d is one of the known destinations.
func (d Destination) Valid() bool {
	switch d {
	case DestinationProduct, DestinationCheckout, DestinationDiscount:
		return true
	default:
		return false
	}
}

func (d Destination) String() string {
	return string(d)
}
