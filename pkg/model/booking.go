package model

import (
	"fmt"
	"math"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Booking is the persisted reservation record. Check-in and check-out are
// calendar dates kept in DateLayout form; the stay is the half-open interval
// [CheckIn, CheckOut).
type Booking struct {
	ConfirmationCode string        `json:"confirmation_number" bson:"_id"`
	RoomID           string        `json:"room_id" bson:"room_id" validate:"required"`
	RoomType         RoomType      `json:"room_type" bson:"room_type" validate:"required,oneof=Single Double Suite"`
	GuestName        string        `json:"guest_name" bson:"guest_name" validate:"required,max=200"`
	GuestEmail       string        `json:"guest_email" bson:"guest_email" validate:"required,max=320"`
	GuestPhone       string        `json:"guest_phone" bson:"guest_phone" validate:"required,max=50"`
	CheckIn          string        `json:"check_in" bson:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut         string        `json:"check_out" bson:"check_out" validate:"required,datetime=2006-01-02"`
	Nights           int           `json:"nights" bson:"nights" validate:"min=1"`
	TotalPrice       float64       `json:"total_price" bson:"total_price" validate:"min=0"`
	Status           BookingStatus `json:"status" bson:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	Supersedes       string        `json:"supersedes,omitempty" bson:"supersedes,omitempty"`
	SupersededBy     string        `json:"superseded_by,omitempty" bson:"superseded_by,omitempty"`
}

func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// Range parses the stored dates back into a DateRange.
func (b *Booking) Range() (DateRange, error) {
	return ParseDateRange(b.CheckIn, b.CheckOut)
}

// Clone returns a copy that shares no mutable state with b.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}

// Guest carries the opaque contact fields supplied by the presentation layer.
type Guest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,max=320"`
	Phone string `json:"phone" validate:"required,max=50"`
}

type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseDateRange parses two DateLayout strings and requires checkOut > checkIn.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid check_in %q: must be YYYY-MM-DD", checkIn)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid check_out %q: must be YYYY-MM-DD", checkOut)
	}
	r := DateRange{CheckIn: in, CheckOut: out}
	if !r.Valid() {
		return DateRange{}, fmt.Errorf("check_out %s must be after check_in %s", checkOut, checkIn)
	}
	return r, nil
}

func (r DateRange) Valid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Nights counts whole calendar days between the dates. It works on Unix
// seconds because time.Duration overflows for ranges above ~292 years.
func (r DateRange) Nights() int {
	return int((r.CheckOut.Unix() - r.CheckIn.Unix()) / secondsPerDay)
}

func (r DateRange) CheckInString() string {
	return r.CheckIn.Format(DateLayout)
}

func (r DateRange) CheckOutString() string {
	return r.CheckOut.Format(DateLayout)
}

// TotalPrice is nights times the nightly rate, rounded to cents.
func TotalPrice(nights int, nightlyPrice float64) float64 {
	return math.Round(float64(nights)*nightlyPrice*100) / 100
}
