package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	AddressID int64       `json:"addressId"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreateOrderRequest turns the caller's cart into an order.
type CreateOrderRequest struct {
	AddressID int64   `json:"addressId"`
	CartIDs   []int64 `json:"cartIds,omitempty"`
}

// ItemsTotal recomputes the order total from its lines.
func (o Order) ItemsTotal() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.Price * int64(it.Quantity)
	}
	return sum
}
