package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/retry"
)

// BookingLister is the read side of the reservation store.
type BookingLister interface {
	All(ctx context.Context) ([]*model.Booking, error)
}

type ExportResult struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Summary  Summary `json:"summary"`
}

type Exporter struct {
	store   BookingLister
	sink    Sink
	retries int
	backoff time.Duration
	log     *logger.Logger
	now     func() time.Time
}

// NewExporter retries failed store reads up to retries more times, waiting
// backoff times the attempt number in between.
func NewExporter(store BookingLister, sink Sink, retries int, backoff time.Duration, log *logger.Logger) *Exporter {
	return &Exporter{
		store:   store,
		sink:    sink,
		retries: retries,
		backoff: backoff,
		log:     log,
		now:     time.Now,
	}
}

// FileName is report_YYYYMMDD_HHMMSS.txt in UTC.
func FileName(at time.Time) string {
	return "report_" + at.UTC().Format("20060102_150405") + ".txt"
}

func (e *Exporter) Summary(ctx context.Context, p *Period) (Summary, error) {
	bookings, err := e.readAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(bookings, p), nil
}

func (e *Exporter) Export(ctx context.Context, p *Period) (*ExportResult, error) {
	bookings, err := e.readAll(ctx)
	if err != nil {
		return nil, err
	}

	selected := Filter(bookings, p)
	summary := Summarize(selected, nil)
	now := e.now()
	name := FileName(now)

	location, err := e.sink.Put(ctx, name, []byte(Render(summary, selected, p, now)))
	if err != nil {
		return nil, err
	}

	e.log.Info("Report exported",
		"name", name,
		"location", location,
		"total", summary.Total,
	)
	return &ExportResult{Name: name, Location: location, Summary: summary}, nil
}

func (e *Exporter) readAll(ctx context.Context) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := retry.Do(ctx, retry.Policy{
		Attempts: e.retries + 1,
		Backoff:  e.backoff,
		Retryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
		OnRetry: func(attempt int, err error) {
			e.log.Warn("Retrying store operation",
				"operation", "read bookings for report",
				"attempt", attempt,
				"error", err,
			)
		},
	}, func(ctx context.Context) error {
		var err error
		bookings, err = e.store.All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}
