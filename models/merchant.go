package models

// Merchant is a directory entry returned by the merchant search endpoint.
type Merchant struct {
	// MerchantID is the server-side merchant identifier.
	MerchantID string `json:"merchant_id"`

	// Name is the merchant display name.
	Name string `json:"name"`

	// Category is the merchant business category, free-form.
	Category string `json:"category"`
}
