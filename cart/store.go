// Package cart provides the in-memory session cart. Each session owns
// an independent item list; the store only synchronizes map access.
package cart

import (
	"sync"

	"obraexpress-store/models"
)

// Store keeps one cart per session id.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string][]models.CartItem),
	}
}

// AddItem adds a line item to the session cart. Adding an item with a
// codigo already in the cart merges quantities and totals instead of
// duplicating the line.
func (s *Store) AddItem(session string, item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[session]
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Cantidad += item.Cantidad
			items[i].Total += item.Total
			if item.FechaDespacho != nil {
				items[i].FechaDespacho = item.FechaDespacho
			}
			return
		}
	}
	s.carts[session] = append(items, item)
}

// RemoveItem removes the line with the given codigo, if present.
func (s *Store) RemoveItem(session string, codigo string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[session]
	for i := range items {
		if items[i].ID == codigo {
			s.carts[session] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the session's line items.
func (s *Store) Items(session string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[session]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// State returns the session cart with its total.
func (s *Store) State(session string) models.CartState {
	items := s.Items(session)
	total := 0
	for _, item := range items {
		total += item.Total
	}
	return models.CartState{Items: items, Total: total}
}

// Clear empties the session cart.
func (s *Store) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
}
