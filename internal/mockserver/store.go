package mockserver

import (
	"strings"
	"sync"

	"marketplace_client/internal/domain"
)

// Categories is the fixed category set served by /products/categories.
var Categories = []string{
	"electronics",
	"furniture",
	"clothing",
	"books",
	"sports",
	"other",
}

type account struct {
	user         domain.User
	passwordHash []byte
}

// memoryStore holds all mock server state behind one lock. Products keep
// insertion order; listings are returned in that order.
type memoryStore struct {
	mu           sync.RWMutex
	accountsByID map[string]*account
	idsByEmail   map[string]string
	products     []domain.Product
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accountsByID: make(map[string]*account),
		idsByEmail:   make(map[string]string),
	}
}

func (s *memoryStore) createAccount(user domain.User, passwordHash []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := s.idsByEmail[email]; exists {
		return false
	}
	s.accountsByID[user.ID] = &account{user: user, passwordHash: passwordHash}
	s.idsByEmail[email] = user.ID
	return true
}

func (s *memoryStore) accountByEmail(email string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idsByEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	acc := s.accountsByID[id]
	return acc, acc != nil
}

func (s *memoryStore) accountByID(id string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accountsByID[id]
	return acc, ok
}

func (s *memoryStore) updateProfile(id string, data domain.UpdateProfileData) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accountsByID[id]
	if !ok {
		return nil, false
	}
	oldEmail := strings.ToLower(acc.user.Email)
	newEmail := strings.ToLower(data.Email)
	if newEmail != oldEmail {
		if _, taken := s.idsByEmail[newEmail]; taken {
			return nil, false
		}
		delete(s.idsByEmail, oldEmail)
		s.idsByEmail[newEmail] = id
	}
	acc.user.Name = data.Name
	acc.user.Email = data.Email
	acc.user.Phone = data.Phone
	acc.user.Avatar = data.Avatar
	updated := acc.user
	return &updated, true
}

func (s *memoryStore) updatePasswordHash(id string, hash []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accountsByID[id]
	if !ok {
		return false
	}
	acc.passwordHash = hash
	return true
}

func (s *memoryStore) addProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// listProducts applies the filter semantics of the contract: substring
// match on title or description, exact category, inclusive price bounds.
// An inverted range simply matches nothing.
func (s *memoryStore) listProducts(filters domain.ProductFilters) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.products))
	search := strings.ToLower(filters.Search)
	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(p.Category, filters.Category) {
			continue
		}
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			continue
		}
		result = append(result, p)
	}
	return result
}

// getProduct returns the product and bumps its view counter, which only
// ever grows.
func (s *memoryStore) getProduct(id string) (*domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Views++
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}
