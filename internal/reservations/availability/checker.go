package availability

import (
	"context"
	"fmt"

	"hotelbook/pkg/model"
)

// BookingReader is the read side of the reservation store used for
// availability decisions.
type BookingReader interface {
	FindByRoom(ctx context.Context, roomID string) ([]*model.Booking, error)
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share a night. A stay
// that checks out on the day another checks in does not overlap it.
func Overlaps(a, b model.DateRange) bool {
	return a.CheckIn.Before(b.CheckOut) && a.CheckOut.After(b.CheckIn)
}

type Checker struct {
	store BookingReader
}

func NewChecker(store BookingReader) *Checker {
	return &Checker{store: store}
}

func (c *Checker) IsAvailable(ctx context.Context, roomID string, r model.DateRange) (bool, error) {
	return c.IsAvailableExcluding(ctx, roomID, r, "")
}

// IsAvailableExcluding ignores the booking with excludeCode, so a stay can be
// moved onto dates that overlap its own current dates.
func (c *Checker) IsAvailableExcluding(ctx context.Context, roomID string, r model.DateRange, excludeCode string) (bool, error) {
	bookings, err := c.store.FindByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to read bookings for room %s: %w", roomID, err)
	}

	for _, b := range bookings {
		if !b.IsActive() || b.RoomID != roomID {
			continue
		}
		if excludeCode != "" && b.ConfirmationCode == excludeCode {
			continue
		}
		existing, err := b.Range()
		if err != nil {
			return false, fmt.Errorf("booking %s has invalid dates: %w", b.ConfirmationCode, err)
		}
		if Overlaps(r, existing) {
			return false, nil
		}
	}
	return true, nil
}
