package models

// Product prices are whole rupiah.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (p Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Stock
}
