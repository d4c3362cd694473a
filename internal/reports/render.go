package reports

import (
	"fmt"
	"strings"
	"time"

	"hotelbook/pkg/model"
)

const separator = "------------------------------------------------------------"

// Render produces the plain-text export: a summary block followed by one
// block per booking in the given order.
func Render(s Summary, bookings []*model.Booking, p *Period, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("HOTEL RESERVATION REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	if p != nil {
		fmt.Fprintf(&b, "Period: %s to %s (by check-in)\n", p.From.Format(model.DateLayout), p.To.Format(model.DateLayout))
	} else {
		b.WriteString("Period: all reservations\n")
	}
	b.WriteString(separator + "\n")

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Reservations: %d\n", s.Total)
	fmt.Fprintf(&b, "Confirmed: %d\n", s.ConfirmedCount)
	fmt.Fprintf(&b, "Cancelled: %d\n", s.CancelledCount)
	fmt.Fprintf(&b, "Total Revenue: $%.2f\n", s.TotalRevenue)
	fmt.Fprintf(&b, "Average Reservation Value: $%.2f\n", s.AverageValue)
	b.WriteString(separator + "\n")

	if len(bookings) == 0 {
		b.WriteString("No reservations in this period.\n")
		return b.String()
	}

	b.WriteString("RESERVATIONS\n")
	for _, r := range bookings {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Confirmation: %s\n", r.ConfirmationCode)
		fmt.Fprintf(&b, "Guest: %s\n", r.GuestName)
		fmt.Fprintf(&b, "Email: %s\n", r.GuestEmail)
		fmt.Fprintf(&b, "Phone: %s\n", r.GuestPhone)
		fmt.Fprintf(&b, "Room: %s (%s)\n", r.RoomID, r.RoomType)
		fmt.Fprintf(&b, "Dates: %s to %s (%d nights)\n", r.CheckIn, r.CheckOut, r.Nights)
		fmt.Fprintf(&b, "Total: $%.2f\n", r.TotalPrice)
		fmt.Fprintf(&b, "Status: %s\n", r.Status)
		if r.Supersedes != "" {
			fmt.Fprintf(&b, "Replaces: %s\n", r.Supersedes)
		}
		if r.SupersededBy != "" {
			fmt.Fprintf(&b, "Replaced by: %s\n", r.SupersededBy)
		}
	}
	return b.String()
}
