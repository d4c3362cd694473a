// Package catalog holds the fixed room inventory of the property.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
)

var ErrInvalidCatalog = errors.New("invalid room catalog")

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	rooms []model.Room
	index map[string]int
}

// New validates rooms and builds a catalog preserving their order.
// Amenities are normalized to their canonical keys.
func New(rooms []model.Room) (*Catalog, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: no rooms", ErrInvalidCatalog)
	}

	c := &Catalog{
		rooms: make([]model.Room, 0, len(rooms)),
		index: make(map[string]int, len(rooms)),
	}

	var problems []error
	for i, r := range rooms {
		r.ID = sanitizer.NormalizeRoomID(r.ID)
		if r.ID == "" {
			problems = append(problems, fmt.Errorf("room %d: missing room_id", i))
			continue
		}
		if _, dup := c.index[r.ID]; dup {
			problems = append(problems, fmt.Errorf("room %s: duplicate room_id", r.ID))
			continue
		}
		if !r.Type.Valid() {
			problems = append(problems, fmt.Errorf("room %s: unknown room_type %q", r.ID, r.Type))
		}
		if r.MaxGuests <= 0 {
			problems = append(problems, fmt.Errorf("room %s: max_guests must be positive", r.ID))
		}
		if r.NumBeds <= 0 {
			problems = append(problems, fmt.Errorf("room %s: num_beds must be positive", r.ID))
		}
		if r.NightlyPrice < 0 {
			problems = append(problems, fmt.Errorf("room %s: nightly_price cannot be negative", r.ID))
		}

		r.Amenities = sanitizer.NormalizeAmenities(r.Amenities)
		c.index[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(problems...))
	}
	return c, nil
}

// Load reads a JSON array of rooms from path. An empty path yields the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var rooms []model.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(rooms)
}

// All returns the rooms in catalog order. The slice is a copy.
func (c *Catalog) All() []model.Room {
	out := make([]model.Room, len(c.rooms))
	for i, r := range c.rooms {
		out[i] = cloneRoom(r)
	}
	return out
}

func (c *Catalog) Get(roomID string) (model.Room, bool) {
	i, ok := c.index[roomID]
	if !ok {
		return model.Room{}, false
	}
	return cloneRoom(c.rooms[i]), true
}

func (c *Catalog) Len() int {
	return len(c.rooms)
}

func cloneRoom(r model.Room) model.Room {
	r.Amenities = append([]string(nil), r.Amenities...)
	return r
}
