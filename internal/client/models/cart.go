package models

type CartItem struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Subtotal is price times quantity; zero when the product is not embedded.
func (c CartItem) Subtotal() int64 {
	if c.Product == nil {
		return 0
	}
	return c.Product.Price * int64(c.Quantity)
}

// CartTotal is the reply of GET /collection/cart/total.
type CartTotal struct {
	Total int `json:"total"`
}

// CartSum adds up the subtotals of items.
func CartSum(items []CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}
