package store

import (
	"fmt"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

func (s *Store) Orders(uid int64) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.orders[uid])
}

func (s *Store) Order(uid, id int64) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[uid][id]
	if !ok {
		return models.Order{}, common.ErrorNotFound
	}
	return o, nil
}

// CreateOrder checks out the selected cart lines (all of them when
// req.CartIDs is empty). Stock is taken and the lines leave the cart. Nothing
// changes when any line fails validation.
func (s *Store) CreateOrder(uid int64, req models.CreateOrderRequest) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[uid][req.AddressID]; !ok {
		return models.Order{}, fmt.Errorf("%w: unknown address %d", common.ErrorValidation, req.AddressID)
	}

	cart := s.carts[uid]
	var lines []models.CartItem
	if len(req.CartIDs) == 0 {
		lines = sortedValues(cart)
	} else {
		for _, id := range req.CartIDs {
			it, ok := cart[id]
			if !ok {
				return models.Order{}, fmt.Errorf("%w: unknown cart item %d", common.ErrorValidation, id)
			}
			lines = append(lines, it)
		}
	}
	if len(lines) == 0 {
		return models.Order{}, fmt.Errorf("%w: cart is empty", common.ErrorValidation)
	}

	order := models.Order{UserID: uid, AddressID: req.AddressID, Status: models.OrderPending}
	for _, it := range lines {
		p, ok := s.products[it.ProductID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: product %d is gone", common.ErrorValidation, it.ProductID)
		}
		if !p.InStock(it.Quantity) {
			return models.Order{}, fmt.Errorf("%w: %s has only %d in stock", common.ErrorValidation, p.Name, p.Stock)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}

	for _, it := range lines {
		p := s.products[it.ProductID]
		p.Stock -= it.Quantity
		s.products[p.ID] = p
		delete(cart, it.ID)
	}

	order.ID = s.id()
	order.Total = order.ItemsTotal()
	order.CreatedAt = s.now().UTC()
	bucket(s.orders, uid)[order.ID] = order
	return order, nil
}

// UpdateOrderStatus only moves an order forward; completed and cancelled
// orders are final.
func (s *Store) UpdateOrderStatus(uid, id int64, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[uid][id]
	if !ok {
		return models.Order{}, common.ErrorNotFound
	}
	if o.Status == models.OrderCompleted || o.Status == models.OrderCancelled {
		return models.Order{}, fmt.Errorf("%w: order is %s", common.ErrorValidation, o.Status)
	}
	switch status {
	case models.OrderPending, models.OrderPaid, models.OrderShipped, models.OrderCompleted, models.OrderCancelled:
	default:
		return models.Order{}, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}
	o.Status = status
	s.orders[uid][id] = o
	return o, nil
}

// DeleteOrder cancels a pending order and returns its stock.
func (s *Store) DeleteOrder(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[uid][id]
	if !ok {
		return common.ErrorNotFound
	}
	if o.Status != models.OrderPending {
		return fmt.Errorf("%w: only pending orders can be cancelled", common.ErrorValidation)
	}
	for _, it := range o.Items {
		if p, ok := s.products[it.ProductID]; ok {
			p.Stock += it.Quantity
			s.products[p.ID] = p
		}
	}
	delete(s.orders[uid], id)
	return nil
}
