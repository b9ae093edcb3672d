package models

type CreateCheckoutSessionRequest struct {
	NumberOfTravelers int `json:"number_of_travelers" validate:"omitempty,min=1,max=50"`
}

type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status,omitempty"`
}

// CheckoutStatusPaid is the payment status of a session whose charge went through.
const CheckoutStatusPaid = "paid"

// CheckoutParams describes a one-off charge for a package booking.
type CheckoutParams struct {
	CustomerEmail     string
	PackageID         uint
	PackageName       string
	UnitPrice         float64
	NumberOfTravelers int
	UserID            uint
}
