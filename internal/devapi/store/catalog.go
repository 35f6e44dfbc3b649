package store

import (
	"fmt"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

func validateProduct(p models.Product) error {
	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return fmt.Errorf("%w: product needs a name and non-negative price and stock", common.ErrorValidation)
	}
	return nil
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.products)
}

func (s *Store) Product(id int64) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, common.ErrorNotFound
	}
	return p, nil
}

func (s *Store) CreateProduct(p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id()
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) UpdateProduct(id int64, p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return models.Product{}, common.ErrorNotFound
	}
	p.ID = id
	s.products[id] = p
	return p, nil
}

func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.products, id)
	return nil
}
