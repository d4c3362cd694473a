package repository

import (
	"context"
	"sync"

	"hotelbook/pkg/model"
)

// MemoryStore keeps bookings in process memory only.
type MemoryStore struct {
	mu   sync.RWMutex
	data *collection
}

func NewMemoryStore() *MemoryStore {
	c, _ := newCollection(nil)
	return &MemoryStore{data: c}
}

func (s *MemoryStore) Append(_ context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.data.withAppended(booking)
	if err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, code string, status model.BookingStatus) (bool, error) {
	return s.update(code, setStatus(status)), nil
}

func (s *MemoryStore) Supersede(_ context.Context, oldCode, newCode string) (bool, error) {
	return s.update(oldCode, supersede(newCode)), nil
}

func (s *MemoryStore) update(code string, mutate func(*model.Booking)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.withUpdated(code, mutate)
	if next == nil {
		return false
	}
	s.data = next
	return true
}

func (s *MemoryStore) Find(_ context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	return s.snapshot().find(code, includeCancelled)
}

func (s *MemoryStore) FindByRoom(_ context.Context, roomID string) ([]*model.Booking, error) {
	return s.snapshot().byRoom(roomID), nil
}

func (s *MemoryStore) All(_ context.Context) ([]*model.Booking, error) {
	return s.snapshot().all(), nil
}

func (s *MemoryStore) snapshot() *collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}
