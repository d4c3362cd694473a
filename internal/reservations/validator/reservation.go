package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	confirmationCodeRegex = regexp.MustCompile(`^CONF-[A-Z0-9]{8}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("confirmation_code", validateConfirmationCode); err != nil {
		log.Fatal("Failed to register 'confirmation_code' validator",
			"error", err,
		)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateConfirmationCode(fl validator.FieldLevel) bool {
	return confirmationCodeRegex.MatchString(fl.Field().String())
}

// ValidateRequest checks field constraints and returns the parsed stay.
func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) (model.DateRange, error) {
	if err := v.validateStruct(req); err != nil {
		return model.DateRange{}, err
	}
	return parseRange(req.CheckIn, req.CheckOut)
}

func (v *ReservationValidator) ValidateSearch(search *model.RoomSearch) (model.DateRange, error) {
	if err := v.validateStruct(search); err != nil {
		return model.DateRange{}, err
	}
	return parseRange(search.CheckIn, search.CheckOut)
}

// ValidateCapacity rejects a party larger than the room holds. Zero guests
// means the caller did not say.
func (v *ReservationValidator) ValidateCapacity(req *model.ReservationRequest, room model.Room) error {
	if req.Guests > room.MaxGuests {
		return ValidationErrors{
			ValidationError{
				Field:   "guests",
				Message: fmt.Sprintf("guests count (%d) exceeds room capacity (%d)", req.Guests, room.MaxGuests),
			},
		}
	}
	return nil
}

// ValidateBooking is the last check before a record reaches the store.
func (v *ReservationValidator) ValidateBooking(booking *model.Booking) error {
	if err := v.validateStruct(booking); err != nil {
		return err
	}
	if err := v.ValidateCode(booking.ConfirmationCode); err != nil {
		return err
	}
	if _, err := parseRange(booking.CheckIn, booking.CheckOut); err != nil {
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateCode(code string) error {
	if err := v.validate.Var(code, "required,confirmation_code"); err != nil {
		return ValidationErrors{
			ValidationError{
				Field:   "confirmation_number",
				Message: "confirmation_number must look like CONF-XXXXXXXX",
			},
		}
	}
	return nil
}

func (v *ReservationValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func parseRange(checkIn, checkOut string) (model.DateRange, error) {
	r, err := model.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return model.DateRange{}, ValidationErrors{
			ValidationError{
				Field:   "check_out",
				Message: err.Error(),
			},
		}
	}
	return r, nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "confirmation_code":
			message = fmt.Sprintf("%s must look like CONF-XXXXXXXX", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
