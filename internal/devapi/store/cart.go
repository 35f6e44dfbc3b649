package store

import (
	"fmt"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

// withProduct embeds the current catalog entry. Caller holds the lock.
func (s *Store) withProduct(it models.CartItem) models.CartItem {
	if p, ok := s.products[it.ProductID]; ok {
		it.Product = &p
	}
	return it
}

func (s *Store) CartItems(uid int64) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := sortedValues(s.carts[uid])
	for i := range items {
		items[i] = s.withProduct(items[i])
	}
	return items
}

func (s *Store) CartItem(uid, id int64) (models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.carts[uid][id]
	if !ok {
		return models.CartItem{}, common.ErrorNotFound
	}
	return s.withProduct(it), nil
}

// CartCount is the number of cart lines of the user.
func (s *Store) CartCount(uid int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts[uid])
}

// AddCartItem adds qty of a product. Adding a product already in the cart
// grows the existing line instead of creating a new one.
func (s *Store) AddCartItem(uid, productID int64, qty int) (models.CartItem, error) {
	if qty <= 0 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be positive", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return models.CartItem{}, common.ErrorNotFound
	}

	cart := bucket(s.carts, uid)
	for id, it := range cart {
		if it.ProductID == productID {
			it.Quantity += qty
			if !p.InStock(it.Quantity) {
				return models.CartItem{}, fmt.Errorf("%w: only %d in stock", common.ErrorValidation, p.Stock)
			}
			cart[id] = it
			return s.withProduct(it), nil
		}
	}

	if !p.InStock(qty) {
		return models.CartItem{}, fmt.Errorf("%w: only %d in stock", common.ErrorValidation, p.Stock)
	}
	it := models.CartItem{ID: s.id(), ProductID: productID, Quantity: qty}
	cart[it.ID] = it
	return s.withProduct(it), nil
}

func (s *Store) UpdateCartItem(uid, id int64, qty int) (models.CartItem, error) {
	if qty <= 0 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be positive", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.carts[uid][id]
	if !ok {
		return models.CartItem{}, common.ErrorNotFound
	}
	if p, ok := s.products[it.ProductID]; ok && !p.InStock(qty) {
		return models.CartItem{}, fmt.Errorf("%w: only %d in stock", common.ErrorValidation, p.Stock)
	}
	it.Quantity = qty
	s.carts[uid][id] = it
	return s.withProduct(it), nil
}

func (s *Store) DeleteCartItem(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[uid][id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.carts[uid], id)
	return nil
}
