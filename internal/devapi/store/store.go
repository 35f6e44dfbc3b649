// Package store keeps the development API's data in memory.
//
// Every method is safe for concurrent use. Records are returned by value so
// callers can never alias the store's state. Per-user collections (cart,
// addresses, orders) are isolated by user id; looking up another user's
// record yields common.ErrorNotFound.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
)

type userRecord struct {
	models.User
	PasswordHash string
}

type phoneCode struct {
	phone string
	code  string
}

type Store struct {
	mu sync.RWMutex

	nextID int64
	now    func() time.Time

	users     map[int64]*userRecord
	products  map[int64]models.Product
	carts     map[int64]map[int64]models.CartItem
	addresses map[int64]map[int64]models.Address
	orders    map[int64]map[int64]models.Order
	codes     map[int64]phoneCode
}

func New() *Store {
	return &Store{
		now:       time.Now,
		users:     map[int64]*userRecord{},
		products:  map[int64]models.Product{},
		carts:     map[int64]map[int64]models.CartItem{},
		addresses: map[int64]map[int64]models.Address{},
		orders:    map[int64]map[int64]models.Order{},
		codes:     map[int64]phoneCode{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func bucket[T any](m map[int64]map[int64]T, uid int64) map[int64]T {
	b, ok := m[uid]
	if !ok {
		b = map[int64]T{}
		m[uid] = b
	}
	return b
}

// Users

func (s *Store) CreateUser(name, email, passwordHash string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, fmt.Errorf("%w: email required", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return models.User{}, fmt.Errorf("%w: email already registered", common.ErrorValidation)
		}
	}

	u := &userRecord{
		User:         models.User{ID: s.id(), Name: name, Email: email},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	return u.User, nil
}

// UserByEmail returns the user and its password hash.
func (s *Store) UserByEmail(email string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u.User, u.PasswordHash, nil
		}
	}
	return models.User{}, "", common.ErrorNotFound
}

func (s *Store) UserByID(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return u.User, nil
}

func (s *Store) UpdateUser(id int64, upd models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Phone != nil && *upd.Phone != u.Phone {
		u.Phone = *upd.Phone
		u.Verified = false
	}
	return u.User, nil
}

// Phone verification

// SetCode replaces any pending code of the user.
func (s *Store) SetCode(uid int64, phone, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[uid] = phoneCode{phone: phone, code: code}
}

// VerifyCode consumes a matching pending code and marks the phone as
// verified on the user.
func (s *Store) VerifyCode(uid int64, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc, ok := s.codes[uid]
	if !ok || pc.phone != phone || pc.code != code {
		return common.ErrInvalidCode
	}
	delete(s.codes, uid)

	if u, ok := s.users[uid]; ok {
		u.Phone = phone
		u.Verified = true
	}
	return nil
}
