package repository

import (
	"context"

	"hotelbook/pkg/model"
)

// ReservationStore is the single source of truth for bookings. Every
// mutating call has durably persisted when it returns nil.
type ReservationStore interface {
	// Append persists a new booking. It returns ErrDuplicateCode when the
	// confirmation code was ever used before.
	Append(ctx context.Context, booking *model.Booking) error
	// UpdateStatus reports false when no booking has the given code.
	UpdateStatus(ctx context.Context, code string, status model.BookingStatus) (bool, error)
	// Supersede cancels oldCode and records newCode as its replacement.
	Supersede(ctx context.Context, oldCode, newCode string) (bool, error)
	// Find returns ErrNotFound for unknown codes, and for cancelled bookings
	// unless includeCancelled is set.
	Find(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error)
	FindByRoom(ctx context.Context, roomID string) ([]*model.Booking, error)
	// All returns every record regardless of status, in insertion order.
	All(ctx context.Context) ([]*model.Booking, error)
}

// Transactor is implemented by stores that can run several writes atomically.
// fn must only use the ctx it is given.
type Transactor interface {
	ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
