package notifications

import (
	"fmt"
	"strings"

	"hotelbook/pkg/model"
)

const DefaultHotelName = "Best Hotel Booking"

// Composer renders the guest-facing subject and body for each event.
type Composer struct {
	HotelName string
}

func NewComposer(hotelName string) *Composer {
	if hotelName == "" {
		hotelName = DefaultHotelName
	}
	return &Composer{HotelName: hotelName}
}

func (c *Composer) Created(b *model.Booking, room model.Room) model.Notification {
	amenities := "none"
	if len(room.Amenities) > 0 {
		amenities = strings.Join(room.Amenities, ", ")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", b.GuestName)
	body.WriteString("Your reservation has been confirmed!\n\n")
	fmt.Fprintf(&body, "Confirmation Number: %s\n", b.ConfirmationCode)
	fmt.Fprintf(&body, "Room Type: %s\n", b.RoomType)
	fmt.Fprintf(&body, "Check-in: %s\n", b.CheckIn)
	fmt.Fprintf(&body, "Check-out: %s\n", b.CheckOut)
	fmt.Fprintf(&body, "Number of Nights: %d\n", b.Nights)
	fmt.Fprintf(&body, "Nightly Rate: $%.2f\n", room.NightlyPrice)
	fmt.Fprintf(&body, "Total Price: $%.2f\n\n", b.TotalPrice)
	fmt.Fprintf(&body, "Room Amenities: %s\n\n", amenities)
	body.WriteString("Thank you for booking with us!\n\n")
	c.signOff(&body)

	return model.Notification{
		Event:            model.EventReservationCreated,
		ConfirmationCode: b.ConfirmationCode,
		Recipient:        b.GuestEmail,
		Subject:          "Reservation Confirmation - " + c.HotelName,
		Body:             body.String(),
	}
}

func (c *Composer) Modified(old, replacement *model.Booking) model.Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", replacement.GuestName)
	body.WriteString("Your reservation has been successfully modified!\n\n")
	fmt.Fprintf(&body, "Previous Confirmation Number: %s\n", old.ConfirmationCode)
	fmt.Fprintf(&body, "New Confirmation Number: %s\n\n", replacement.ConfirmationCode)
	body.WriteString("Updated Reservation Details:\n")
	fmt.Fprintf(&body, "Room Type: %s\n", replacement.RoomType)
	fmt.Fprintf(&body, "Check-in: %s\n", replacement.CheckIn)
	fmt.Fprintf(&body, "Check-out: %s\n", replacement.CheckOut)
	fmt.Fprintf(&body, "Number of Nights: %d\n", replacement.Nights)
	fmt.Fprintf(&body, "Total Price: $%.2f\n\n", replacement.TotalPrice)
	body.WriteString("The previous reservation has been cancelled.\n\n")
	body.WriteString("Thank you for booking with us!\n\n")
	c.signOff(&body)

	return model.Notification{
		Event:            model.EventReservationModified,
		ConfirmationCode: replacement.ConfirmationCode,
		Recipient:        replacement.GuestEmail,
		Subject:          "Reservation Modified - " + c.HotelName,
		Body:             body.String(),
	}
}

func (c *Composer) Cancelled(b *model.Booking) model.Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", b.GuestName)
	body.WriteString("Your reservation has been cancelled.\n\n")
	fmt.Fprintf(&body, "Confirmation Number: %s\n\n", b.ConfirmationCode)
	body.WriteString("Cancelled Reservation Details:\n")
	fmt.Fprintf(&body, "Room: %s\n", b.RoomType)
	fmt.Fprintf(&body, "Check-in: %s\n", b.CheckIn)
	fmt.Fprintf(&body, "Check-out: %s\n", b.CheckOut)
	fmt.Fprintf(&body, "Original Total: $%.2f\n\n", b.TotalPrice)
	body.WriteString("Thank you for your understanding. We hope to see you again!\n\n")
	c.signOff(&body)

	return model.Notification{
		Event:            model.EventReservationCancelled,
		ConfirmationCode: b.ConfirmationCode,
		Recipient:        b.GuestEmail,
		Subject:          "Reservation Cancelled - " + c.HotelName,
		Body:             body.String(),
	}
}

func (c *Composer) signOff(body *strings.Builder) {
	fmt.Fprintf(body, "Best regards,\n%s", c.HotelName)
}
