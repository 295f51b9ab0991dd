package state

import (
	"fmt"
	"sync"

	"github.com/five82/folio/internal/books"
)

// Store holds the ordered local copy of the collection. Every mutation is
// keyed by book ID and the store never holds two entries with the same ID.
// The zero value is an empty, ready-to-use store.
type Store struct {
	mu    sync.RWMutex
	items []books.Item
}

// Replace swaps the entire list for items. Entries without an ID and later
// duplicates of an ID are dropped and returned so the caller can report them.
func (s *Store) Replace(items []books.Item) (dropped []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	next := make([]books.Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup || it.ID == "" {
			dropped = append(dropped, it.ID)
			continue
		}
		seen[it.ID] = struct{}{}
		next = append(next, it)
	}
	s.items = next
	return dropped
}

// Append adds item at the end of the list.
func (s *Store) Append(item books.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		return books.ErrMissingID
	}
	if s.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: %s", books.ErrDuplicateID, item.ID)
	}
	s.items = append(s.items, item)
	return nil
}

// Merge writes the draft's fields into the item with the given ID, keeping
// its position. It reports false when the ID is not present.
func (s *Store) Merge(id string, d books.Draft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items[idx] = s.items[idx].WithFields(d)
	return true
}

// Remove deletes the item with the given ID, preserving the order of the
// rest. It reports false when the ID is not present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	return true
}

// Get returns the item with the given ID.
func (s *Store) Get(id string) (books.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return books.Item{}, false
	}
	return s.items[idx], true
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns a copy of the list in display order.
func (s *Store) Items() []books.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []books.Item) []books.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]books.Item, len(items))
	copy(dup, items)
	return dup
}
