package store

import (
	"fmt"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

func (s *Store) Addresses(uid int64) []models.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.addresses[uid])
}

func (s *Store) Address(uid, id int64) (models.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.addresses[uid][id]
	if !ok {
		return models.Address{}, common.ErrorNotFound
	}
	return a, nil
}

// setDefault keeps at most one default address per user. Caller holds the
// lock.
func (s *Store) setDefault(uid, id int64) {
	for k, a := range s.addresses[uid] {
		a.IsDefault = k == id
		s.addresses[uid][k] = a
	}
}

func (s *Store) CreateAddress(uid int64, a models.Address) (models.Address, error) {
	if a.Street == "" || a.City == "" {
		return models.Address{}, fmt.Errorf("%w: street and city required", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := bucket(s.addresses, uid)
	a.ID = s.id()
	if len(book) == 0 {
		a.IsDefault = true
	}
	book[a.ID] = a
	if a.IsDefault {
		s.setDefault(uid, a.ID)
	}
	return book[a.ID], nil
}

func (s *Store) UpdateAddress(uid, id int64, a models.Address) (models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[uid][id]; !ok {
		return models.Address{}, common.ErrorNotFound
	}
	a.ID = id
	s.addresses[uid][id] = a
	if a.IsDefault {
		s.setDefault(uid, id)
	}
	return s.addresses[uid][id], nil
}

func (s *Store) DeleteAddress(uid, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[uid][id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.addresses[uid], id)
	return nil
}
