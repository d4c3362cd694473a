// Package reports aggregates stored bookings for administrators.
package reports

import (
	"fmt"
	"math"
	"time"

	"hotelbook/pkg/model"
)

// Period selects bookings by check-in date. Both ends are inclusive.
type Period struct {
	From time.Time
	To   time.Time
}

// ParsePeriod accepts two YYYY-MM-DD dates. Empty input on both sides means
// no filtering and yields a nil Period.
func ParsePeriod(from, to string) (*Period, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("both from and to are required")
	}
	start, err := time.Parse(model.DateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid from %q: must be YYYY-MM-DD", from)
	}
	end, err := time.Parse(model.DateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid to %q: must be YYYY-MM-DD", to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("to %s must not be before from %s", to, from)
	}
	return &Period{From: start, To: end}, nil
}

func (p *Period) Contains(day time.Time) bool {
	return !day.Before(p.From) && !day.After(p.To)
}

type Summary struct {
	Total          int     `json:"total"`
	ConfirmedCount int     `json:"confirmed_count"`
	CancelledCount int     `json:"cancelled_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	AverageValue   float64 `json:"average_value"`
}

// Filter returns the bookings whose check-in falls inside p, in input order.
// A nil period keeps everything.
func Filter(bookings []*model.Booking, p *Period) []*model.Booking {
	if p == nil {
		return bookings
	}
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		checkIn, err := time.Parse(model.DateLayout, b.CheckIn)
		if err != nil {
			continue
		}
		if p.Contains(checkIn) {
			out = append(out, b)
		}
	}
	return out
}

// Summarize folds bookings into counts and revenue. Revenue only counts
// confirmed bookings. The result does not depend on input order.
func Summarize(bookings []*model.Booking, p *Period) Summary {
	var s Summary
	var cents int64
	for _, b := range Filter(bookings, p) {
		s.Total++
		switch b.Status {
		case model.StatusConfirmed:
			s.ConfirmedCount++
			cents += int64(math.Round(b.TotalPrice * 100))
		case model.StatusCancelled:
			s.CancelledCount++
		}
	}

	s.TotalRevenue = float64(cents) / 100
	if s.ConfirmedCount > 0 {
		s.AverageValue = math.Round(float64(cents)/float64(s.ConfirmedCount)) / 100
	}
	return s
}
