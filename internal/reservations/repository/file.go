package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"hotelbook/pkg/model"
)

// FileStore keeps the whole collection as a JSON array in one file. Each
// mutation rewrites the file through a temp file, fsync and rename, and only
// then publishes the new snapshot to readers.
type FileStore struct {
	path string

	mu   sync.RWMutex
	data *collection

	// write is swapped in tests to simulate disk failures.
	write func(path string, data []byte) error
}

// NewFileStore opens path, loading any existing records. A missing file is
// an empty store; its parent directory is created on demand.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("data file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	data, err := newCollection(records)
	if err != nil {
		return nil, fmt.Errorf("corrupt data file %s: %w", path, err)
	}

	return &FileStore{
		path:  path,
		data:  data,
		write: atomicWriteFile,
	}, nil
}

func readRecords(path string) ([]*model.Booking, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var records []*model.Booking
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", path, err)
	}
	return records, nil
}

func (s *FileStore) Append(_ context.Context, booking *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.data.withAppended(booking)
	if err != nil {
		return err
	}
	return s.commit(next)
}

func (s *FileStore) UpdateStatus(_ context.Context, code string, status model.BookingStatus) (bool, error) {
	return s.update(code, setStatus(status))
}

func (s *FileStore) Supersede(_ context.Context, oldCode, newCode string) (bool, error) {
	return s.update(oldCode, supersede(newCode))
}

func (s *FileStore) update(code string, mutate func(*model.Booking)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.withUpdated(code, mutate)
	if next == nil {
		return false, nil
	}
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// commit must be called with s.mu held.
func (s *FileStore) commit(next *collection) error {
	raw, err := json.MarshalIndent(next.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bookings: %w", err)
	}
	if err := s.write(s.path, raw); err != nil {
		return fmt.Errorf("failed to persist bookings: %w", err)
	}
	s.data = next
	return nil
}

func (s *FileStore) Find(_ context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	return s.snapshot().find(code, includeCancelled)
}

func (s *FileStore) FindByRoom(_ context.Context, roomID string) ([]*model.Booking, error) {
	return s.snapshot().byRoom(roomID), nil
}

func (s *FileStore) All(_ context.Context) ([]*model.Booking, error) {
	return s.snapshot().all(), nil
}

func (s *FileStore) snapshot() *collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	// Persist the rename itself.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		d.Close()
	}
	return nil
}
