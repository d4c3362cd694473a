package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrDuplicateCode = errors.New("confirmation code already exists")

	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	ErrLockTimeout = errors.New("timed out waiting for room lock")

	ErrUnknownRoom = errors.New("room does not exist")
)
