package service

import (
	"context"
	"errors"
	"time"

	"hotelbook/internal/catalog"
	"hotelbook/internal/notifications"
	"hotelbook/internal/reservations/availability"
	reservationerrors "hotelbook/internal/reservations/errors"
	"hotelbook/internal/reservations/repository"
	"hotelbook/internal/reservations/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/retry"
	"hotelbook/pkg/sanitizer"
)

type ReservationService interface {
	Create(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error)
	Modify(ctx context.Context, oldCode string, req *model.ReservationRequest) (*model.Booking, error)
	Cancel(ctx context.Context, code string) (*model.Booking, error)
	Get(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	Rooms() []model.Room
	SearchRooms(ctx context.Context, search *model.RoomSearch) ([]model.Room, error)
}

type reservationService struct {
	store     repository.ReservationStore
	locker    repository.RoomLocker
	catalog   *catalog.Catalog
	checker   *availability.Checker
	filter    *availability.Filter
	validator *validator.ReservationValidator
	notifier  notifications.Notifier
	composer  *notifications.Composer
	cfg       *config.Config

	newCode func() (string, error)
	now     func() time.Time
}

func NewReservationService(
	store repository.ReservationStore,
	locker repository.RoomLocker,
	rooms *catalog.Catalog,
	v *validator.ReservationValidator,
	notifier notifications.Notifier,
	cfg *config.Config,
) ReservationService {
	checker := availability.NewChecker(store)
	return &reservationService{
		store:     store,
		locker:    locker,
		catalog:   rooms,
		checker:   checker,
		filter:    availability.NewFilter(checker),
		validator: v,
		notifier:  notifier,
		composer:  notifications.NewComposer(""),
		cfg:       cfg,
		newCode:   generateCode,
		now:       time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error) {
	req, stay, room, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	available, err := s.isAvailable(ctx, room.ID, stay, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.RoomUnavailable(room.ID)
	}

	booking := s.newBooking(req, room, stay)
	if err := s.insert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create reservation",
			"room_id", room.ID,
			"error", err,
		)
		return nil, err
	}
	release()

	s.cfg.Log.Info("Reservation created",
		"confirmation_number", booking.ConfirmationCode,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	s.notify(ctx, s.composer.Created(booking, room))
	return booking, nil
}

func (s *reservationService) Modify(ctx context.Context, oldCode string, req *model.ReservationRequest) (*model.Booking, error) {
	if err := s.validateCode(oldCode); err != nil {
		return nil, err
	}
	// An unknown or cancelled code is reported before the new request is
	// validated. The old room is only known after this read; it is re-read
	// under the lock.
	current, err := s.findActive(ctx, oldCode)
	if err != nil {
		return nil, err
	}

	req, stay, room, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, current.RoomID, room.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	old, err := s.findActive(ctx, oldCode)
	if err != nil {
		return nil, err
	}

	available, err := s.isAvailable(ctx, room.ID, stay, old.ConfirmationCode)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.RoomUnavailable(room.ID)
	}

	replacement := s.newBooking(req, room, stay)
	replacement.Supersedes = old.ConfirmationCode

	if tx, ok := s.store.(repository.Transactor); ok {
		err = s.replaceInTransaction(ctx, tx, old, replacement)
	} else {
		err = s.replace(ctx, old, replacement)
	}
	if err != nil {
		return nil, err
	}
	release()

	s.cfg.Log.Info("Reservation modified",
		"old_confirmation_number", old.ConfirmationCode,
		"confirmation_number", replacement.ConfirmationCode,
		"room_id", replacement.RoomID,
	)

	old.Status = model.StatusCancelled
	old.SupersededBy = replacement.ConfirmationCode
	s.notify(ctx, s.composer.Modified(old, replacement))
	return replacement, nil
}

// replaceInTransaction supersedes old and appends replacement atomically. A
// duplicate code aborts the transaction and is retried with a fresh code.
func (s *reservationService) replaceInTransaction(ctx context.Context, tx repository.Transactor, old, replacement *model.Booking) error {
	for attempt := 1; attempt <= s.cfg.CodeAttempts; attempt++ {
		if err := s.assignCode(replacement); err != nil {
			return err
		}

		err := s.withRetry(ctx, "modify transaction", func(ctx context.Context) error {
			return tx.ExecuteTransaction(ctx, func(txCtx context.Context) error {
				found, err := s.store.Supersede(txCtx, old.ConfirmationCode, replacement.ConfirmationCode)
				if err != nil {
					return err
				}
				if !found {
					return reservationerrors.ErrNotFound
				}
				return s.store.Append(txCtx, replacement)
			})
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, reservationerrors.ErrDuplicateCode):
			s.cfg.Log.Warn("Confirmation code collision, regenerating",
				"attempt", attempt,
			)
			continue
		case errors.Is(err, reservationerrors.ErrNotFound):
			return apperrors.NotFoundWithID("Reservation", old.ConfirmationCode)
		default:
			return apperrors.Persistence("Failed to save modified reservation", err)
		}
	}
	return apperrors.Persistence("Could not generate a unique confirmation code", reservationerrors.ErrDuplicateCode)
}

// replace cancels old and then appends replacement without a transaction.
// Once old is cancelled, any failure leaves the guest without a booking,
// which is reported as MODIFY_INCOMPLETE.
func (s *reservationService) replace(ctx context.Context, old, replacement *model.Booking) error {
	superseded := false

	for attempt := 1; attempt <= s.cfg.CodeAttempts; attempt++ {
		if err := s.assignCode(replacement); err != nil {
			return s.incomplete(old, superseded, err)
		}

		// Re-pointing superseded_by after a collision keeps the chain exact.
		var found bool
		err := s.withRetry(ctx, "supersede reservation", func(ctx context.Context) error {
			var err error
			found, err = s.store.Supersede(ctx, old.ConfirmationCode, replacement.ConfirmationCode)
			return err
		})
		if err != nil {
			return s.incomplete(old, superseded, err)
		}
		if !found {
			return apperrors.NotFoundWithID("Reservation", old.ConfirmationCode)
		}
		superseded = true

		err = s.appendOnce(ctx, replacement)
		if err == nil {
			return nil
		}
		if !errors.Is(err, reservationerrors.ErrDuplicateCode) {
			return s.incomplete(old, superseded, err)
		}
		s.cfg.Log.Warn("Confirmation code collision, regenerating",
			"attempt", attempt,
		)
	}
	return s.incomplete(old, superseded, reservationerrors.ErrDuplicateCode)
}

func (s *reservationService) incomplete(old *model.Booking, superseded bool, err error) error {
	if !superseded {
		return apperrors.Persistence("Failed to modify reservation", err)
	}
	s.cfg.Log.Error("Reservation cancelled but replacement not saved",
		"confirmation_number", old.ConfirmationCode,
		"room_id", old.RoomID,
		"error", err,
	)
	return apperrors.ModifyIncomplete(old.ConfirmationCode, err)
}

func (s *reservationService) Cancel(ctx context.Context, code string) (*model.Booking, error) {
	if err := s.validateCode(code); err != nil {
		return nil, err
	}

	current, err := s.findActive(ctx, code)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, current.RoomID)
	if err != nil {
		return nil, err
	}
	defer release()

	// A concurrent cancel may have won the lock first.
	booking, err := s.findActive(ctx, code)
	if err != nil {
		return nil, err
	}

	var found bool
	err = s.withRetry(ctx, "cancel reservation", func(ctx context.Context) error {
		var err error
		found, err = s.store.UpdateStatus(ctx, code, model.StatusCancelled)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel reservation",
			"confirmation_number", code,
			"error", err,
		)
		return nil, apperrors.Persistence("Failed to cancel reservation", err)
	}
	if !found {
		return nil, apperrors.NotFoundWithID("Reservation", code)
	}
	release()

	booking.Status = model.StatusCancelled
	s.cfg.Log.Info("Reservation cancelled",
		"confirmation_number", code,
		"room_id", booking.RoomID,
	)
	s.notify(ctx, s.composer.Cancelled(booking))
	return booking, nil
}

func (s *reservationService) Get(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	if err := s.validateCode(code); err != nil {
		return nil, err
	}
	booking, err := s.find(ctx, code, includeCancelled)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", code)
		}
		return nil, apperrors.Persistence("Failed to retrieve reservation", err)
	}
	return booking, nil
}

func (s *reservationService) List(ctx context.Context) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := s.withRetry(ctx, "list reservations", func(ctx context.Context) error {
		var err error
		bookings, err = s.store.All(ctx)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "error", err)
		return nil, apperrors.Persistence("Failed to retrieve reservations", err)
	}
	return bookings, nil
}

func (s *reservationService) Rooms() []model.Room {
	return s.catalog.All()
}

func (s *reservationService) SearchRooms(ctx context.Context, search *model.RoomSearch) ([]model.Room, error) {
	stay, err := s.validator.ValidateSearch(search)
	if err != nil {
		return nil, validationError(err)
	}

	criteria := availability.Criteria{
		Range:     stay,
		Guests:    search.Guests,
		Beds:      search.Beds,
		Amenities: search.Amenities,
	}

	var rooms []model.Room
	err = s.withRetry(ctx, "search rooms", func(ctx context.Context) error {
		var err error
		rooms, err = s.filter.FindCandidates(ctx, s.catalog.All(), criteria)
		return err
	})
	if err != nil {
		s.cfg.Log.Error("Failed to search rooms", "error", err)
		return nil, apperrors.Persistence("Failed to check room availability", err)
	}
	return rooms, nil
}

// prepare sanitizes and validates a request and resolves its room.
func (s *reservationService) prepare(in *model.ReservationRequest) (*model.ReservationRequest, model.DateRange, model.Room, error) {
	if in == nil {
		return nil, model.DateRange{}, model.Room{}, apperrors.InvalidInput("Reservation request cannot be empty")
	}
	req := *in
	sanitize(&req)

	stay, err := s.validator.ValidateRequest(&req)
	if err != nil {
		return nil, model.DateRange{}, model.Room{}, validationError(err)
	}

	room, ok := s.catalog.Get(req.RoomID)
	if !ok {
		return nil, model.DateRange{}, model.Room{}, apperrors.Validation("Invalid reservation request", map[string]any{
			"errors": validator.ValidationErrors{{
				Field:   "room_id",
				Message: reservationerrors.ErrUnknownRoom.Error(),
			}},
		})
	}
	if err := s.validator.ValidateCapacity(&req, room); err != nil {
		return nil, model.DateRange{}, model.Room{}, validationError(err)
	}
	return &req, stay, room, nil
}

func sanitize(req *model.ReservationRequest) {
	req.RoomID = sanitizer.NormalizeRoomID(req.RoomID)
	req.CheckIn = sanitizer.TrimAndNormalize(req.CheckIn)
	req.CheckOut = sanitizer.TrimAndNormalize(req.CheckOut)
	req.Guest.Name = sanitizer.NormalizeName(req.Guest.Name)
	req.Guest.Email = sanitizer.NormalizeEmail(req.Guest.Email)
	req.Guest.Phone = sanitizer.NormalizePhone(req.Guest.Phone)
}

func (s *reservationService) newBooking(req *model.ReservationRequest, room model.Room, stay model.DateRange) *model.Booking {
	nights := stay.Nights()
	return &model.Booking{
		RoomID:     room.ID,
		RoomType:   room.Type,
		GuestName:  req.Guest.Name,
		GuestEmail: req.Guest.Email,
		GuestPhone: req.Guest.Phone,
		CheckIn:    stay.CheckInString(),
		CheckOut:   stay.CheckOutString(),
		Nights:     nights,
		TotalPrice: model.TotalPrice(nights, room.NightlyPrice),
		Status:     model.StatusConfirmed,
		// Millisecond precision survives a round trip through every store.
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
}

func (s *reservationService) assignCode(b *model.Booking) error {
	code, err := s.newCode()
	if err != nil {
		return apperrors.Internal("Failed to generate confirmation code", err)
	}
	b.ConfirmationCode = code
	if err := s.validator.ValidateBooking(b); err != nil {
		return apperrors.Internal("Built an invalid reservation", err)
	}
	return nil
}

// insert appends b under a fresh code, regenerating on collisions.
func (s *reservationService) insert(ctx context.Context, b *model.Booking) error {
	for attempt := 1; attempt <= s.cfg.CodeAttempts; attempt++ {
		if err := s.assignCode(b); err != nil {
			return err
		}

		err := s.appendOnce(ctx, b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, reservationerrors.ErrDuplicateCode) {
			return apperrors.Persistence("Failed to save reservation", err)
		}
		s.cfg.Log.Warn("Confirmation code collision, regenerating",
			"attempt", attempt,
		)
	}
	return apperrors.Persistence("Could not generate a unique confirmation code", reservationerrors.ErrDuplicateCode)
}

// appendOnce appends b with persistence retries. A retried append may find
// its own earlier write, which landed even though the call reported failure.
func (s *reservationService) appendOnce(ctx context.Context, b *model.Booking) error {
	tries := 0
	return s.withRetry(ctx, "append reservation", func(ctx context.Context) error {
		tries++
		err := s.store.Append(ctx, b)
		if tries > 1 && errors.Is(err, reservationerrors.ErrDuplicateCode) {
			if existing, findErr := s.store.Find(ctx, b.ConfirmationCode, true); findErr == nil && sameRecord(existing, b) {
				return nil
			}
		}
		return err
	})
}

func sameRecord(a, b *model.Booking) bool {
	return a.RoomID == b.RoomID &&
		a.GuestEmail == b.GuestEmail &&
		a.CheckIn == b.CheckIn &&
		a.CheckOut == b.CheckOut &&
		a.CreatedAt.Equal(b.CreatedAt)
}

func (s *reservationService) find(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	var booking *model.Booking
	err := s.withRetry(ctx, "find reservation", func(ctx context.Context) error {
		var err error
		booking, err = s.store.Find(ctx, code, includeCancelled)
		return err
	})
	return booking, err
}

// findActive distinguishes unknown codes from already cancelled ones.
func (s *reservationService) findActive(ctx context.Context, code string) (*model.Booking, error) {
	booking, err := s.find(ctx, code, true)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", code)
		}
		return nil, apperrors.Persistence("Failed to retrieve reservation", err)
	}
	if !booking.IsActive() {
		return nil, apperrors.NotFoundWithID("Reservation", code).WithDetails(map[string]any{
			"resource": "Reservation",
			"id":       code,
			"reason":   "already_cancelled",
		})
	}
	return booking, nil
}

func (s *reservationService) isAvailable(ctx context.Context, roomID string, stay model.DateRange, excludeCode string) (bool, error) {
	var available bool
	err := s.withRetry(ctx, "check availability", func(ctx context.Context) error {
		var err error
		available, err = s.checker.IsAvailableExcluding(ctx, roomID, stay, excludeCode)
		return err
	})
	if err != nil {
		return false, apperrors.Persistence("Failed to check room availability", err)
	}
	return available, nil
}

func (s *reservationService) lock(ctx context.Context, roomIDs ...string) (func(), error) {
	release, err := s.locker.Lock(ctx, roomIDs...)
	if err == nil {
		return release, nil
	}

	s.cfg.Log.Warn("Failed to acquire room lock",
		"room_ids", roomIDs,
		"error", err,
	)
	switch {
	case errors.Is(err, reservationerrors.ErrLockTimeout):
		return nil, apperrors.Conflict("This room is currently being booked by another request. Please try again.")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, apperrors.Timeout("Request ended while waiting for the room")
	default:
		return nil, apperrors.Persistence("Failed to acquire room lock", err)
	}
}

func (s *reservationService) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, retry.Policy{
		Attempts:  s.cfg.PersistenceRetries + 1,
		Backoff:   s.cfg.PersistenceBackoff,
		Retryable: isTransient,
		OnRetry: func(attempt int, err error) {
			s.cfg.Log.Warn("Retrying store operation",
				"operation", op,
				"attempt", attempt,
				"error", err,
			)
		},
	}, fn)
}

// isTransient is false for outcomes the store reported deliberately.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, reservationerrors.ErrNotFound),
		errors.Is(err, reservationerrors.ErrDuplicateCode),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		apperrors.IsAppError(err):
		return false
	}
	return true
}

func (s *reservationService) validateCode(code string) error {
	if err := s.validator.ValidateCode(code); err != nil {
		return apperrors.InvalidInput("Invalid confirmation number format")
	}
	return nil
}

// notify runs after the write has committed. It outlives a cancelled request
// but is bounded by the notify timeout, and never fails the operation.
func (s *reservationService) notify(ctx context.Context, n model.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.cfg.Log.Warn("Failed to send notification",
			"event", n.Event,
			"confirmation_number", n.ConfirmationCode,
			"error", err,
		)
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid reservation request", map[string]any{
			"errors": verrs,
		})
	}
	return apperrors.Internal("Validation failed", err)
}
