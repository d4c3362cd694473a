package repository

import (
	reservationerrors "hotelbook/internal/reservations/errors"
	"hotelbook/pkg/model"
)

// collection is an immutable snapshot of all bookings. Mutations return a
// new snapshot so readers holding the old one never see a partial write.
type collection struct {
	records []*model.Booking
	index   map[string]int
}

func newCollection(records []*model.Booking) (*collection, error) {
	c := &collection{
		records: records,
		index:   make(map[string]int, len(records)),
	}
	for i, b := range records {
		if _, dup := c.index[b.ConfirmationCode]; dup {
			return nil, reservationerrors.ErrDuplicateCode
		}
		c.index[b.ConfirmationCode] = i
	}
	return c, nil
}

func (c *collection) withAppended(b *model.Booking) (*collection, error) {
	if _, exists := c.index[b.ConfirmationCode]; exists {
		return nil, reservationerrors.ErrDuplicateCode
	}
	next := &collection{
		records: make([]*model.Booking, len(c.records), len(c.records)+1),
		index:   make(map[string]int, len(c.index)+1),
	}
	copy(next.records, c.records)
	for k, v := range c.index {
		next.index[k] = v
	}
	next.index[b.ConfirmationCode] = len(next.records)
	next.records = append(next.records, b.Clone())
	return next, nil
}

// withUpdated applies mutate to a copy of the booking with the given code.
// It returns nil when the code is unknown.
func (c *collection) withUpdated(code string, mutate func(*model.Booking)) *collection {
	i, ok := c.index[code]
	if !ok {
		return nil
	}
	next := &collection{
		records: make([]*model.Booking, len(c.records)),
		index:   c.index,
	}
	copy(next.records, c.records)
	updated := c.records[i].Clone()
	mutate(updated)
	next.records[i] = updated
	return next
}

func (c *collection) find(code string, includeCancelled bool) (*model.Booking, error) {
	i, ok := c.index[code]
	if !ok {
		return nil, reservationerrors.ErrNotFound
	}
	b := c.records[i]
	if !includeCancelled && !b.IsActive() {
		return nil, reservationerrors.ErrNotFound
	}
	return b.Clone(), nil
}

func (c *collection) byRoom(roomID string) []*model.Booking {
	var out []*model.Booking
	for _, b := range c.records {
		if b.RoomID == roomID {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (c *collection) all() []*model.Booking {
	out := make([]*model.Booking, len(c.records))
	for i, b := range c.records {
		out[i] = b.Clone()
	}
	return out
}

func supersede(newCode string) func(*model.Booking) {
	return func(b *model.Booking) {
		b.Status = model.StatusCancelled
		b.SupersededBy = newCode
	}
}

func setStatus(status model.BookingStatus) func(*model.Booking) {
	return func(b *model.Booking) {
		b.Status = status
	}
}
