package models

type Address struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phoneNumber"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}
