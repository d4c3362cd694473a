package availability

import (
	"context"
	"errors"
	"testing"

	"hotelbook/pkg/model"
)

type mockReader struct {
	bookings []*model.Booking
	err      error
	calls    int
}

func (m *mockReader) FindByRoom(_ context.Context, roomID string) ([]*model.Booking, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out, nil
}

func mustRange(t *testing.T, in, out string) model.DateRange {
	t.Helper()
	r, err := model.ParseDateRange(in, out)
	if err != nil {
		t.Fatalf("ParseDateRange(%s, %s): %v", in, out, err)
	}
	return r
}

func booking(code, room, in, out string, status model.BookingStatus) *model.Booking {
	return &model.Booking{
		ConfirmationCode: code,
		RoomID:           room,
		CheckIn:          in,
		CheckOut:         out,
		Status:           status,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want bool
	}{
		{"partial overlap", [2]string{"2025-12-10", "2025-12-12"}, [2]string{"2025-12-11", "2025-12-13"}, true},
		{"back to back", [2]string{"2025-12-10", "2025-12-12"}, [2]string{"2025-12-12", "2025-12-14"}, false},
		{"back to back reversed", [2]string{"2025-12-12", "2025-12-14"}, [2]string{"2025-12-10", "2025-12-12"}, false},
		{"contained", [2]string{"2025-12-10", "2025-12-20"}, [2]string{"2025-12-12", "2025-12-13"}, true},
		{"identical", [2]string{"2025-12-10", "2025-12-12"}, [2]string{"2025-12-10", "2025-12-12"}, true},
		{"disjoint", [2]string{"2025-12-01", "2025-12-03"}, [2]string{"2025-12-10", "2025-12-12"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])
			if got := Overlaps(a, b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := Overlaps(b, a); got != tt.want {
				t.Errorf("Overlaps should be symmetric, got %v", got)
			}
		})
	}
}

func TestChecker_IsAvailable(t *testing.T) {
	reader := &mockReader{bookings: []*model.Booking{
		booking("CONF-A", "R000", "2025-12-10", "2025-12-12", model.StatusConfirmed),
		booking("CONF-B", "R000", "2025-12-20", "2025-12-22", model.StatusCancelled),
		booking("CONF-C", "R001", "2025-12-10", "2025-12-12", model.StatusConfirmed),
	}}
	checker := NewChecker(reader)
	ctx := context.Background()

	tests := []struct {
		name    string
		room    string
		in, out string
		want    bool
	}{
		{"overlaps confirmed", "R000", "2025-12-11", "2025-12-13", false},
		{"checks in at checkout", "R000", "2025-12-12", "2025-12-14", true},
		{"checks out at checkin", "R000", "2025-12-08", "2025-12-10", true},
		{"cancelled does not occupy", "R000", "2025-12-20", "2025-12-22", true},
		{"other room ignored", "R002", "2025-12-10", "2025-12-12", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsAvailable(ctx, tt.room, mustRange(t, tt.in, tt.out))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChecker_IsAvailableExcluding(t *testing.T) {
	reader := &mockReader{bookings: []*model.Booking{
		booking("CONF-A", "R000", "2025-12-10", "2025-12-12", model.StatusConfirmed),
	}}
	checker := NewChecker(reader)
	r := mustRange(t, "2025-12-11", "2025-12-14")

	ok, err := checker.IsAvailableExcluding(context.Background(), "R000", r, "CONF-A")
	if err != nil || !ok {
		t.Errorf("own booking should be excluded, got %v, %v", ok, err)
	}
	ok, _ = checker.IsAvailableExcluding(context.Background(), "R000", r, "CONF-Z")
	if ok {
		t.Error("other booking should still conflict")
	}
}

func TestChecker_StoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	checker := NewChecker(&mockReader{err: storeErr})

	_, err := checker.IsAvailable(context.Background(), "R000", mustRange(t, "2025-12-10", "2025-12-12"))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestFilter_FindCandidates(t *testing.T) {
	rooms := []model.Room{
		{ID: "small", MaxGuests: 1, NumBeds: 1, NightlyPrice: 100},
		{ID: "family", MaxGuests: 4, NumBeds: 2, NightlyPrice: 250, Amenities: []string{"wifi", "bathtub"}},
		{ID: "deluxe", MaxGuests: 4, NumBeds: 2, NightlyPrice: 400, Amenities: []string{"wifi", "bathtub", "mini_fridge"}},
	}
	reader := &mockReader{bookings: []*model.Booking{
		booking("CONF-A", "deluxe", "2025-12-10", "2025-12-12", model.StatusConfirmed),
	}}
	filter := NewFilter(NewChecker(reader))
	dec := mustRange(t, "2025-12-10", "2025-12-12")

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"two guests skips small room", Criteria{Range: dec, Guests: 2}, []string{"family"}},
		{"no constraints keeps catalog order", Criteria{Range: mustRange(t, "2026-01-01", "2026-01-02")}, []string{"small", "family", "deluxe"}},
		{"all amenities required", Criteria{Range: mustRange(t, "2026-01-01", "2026-01-02"), Amenities: []string{"WiFi", "Mini Fridge"}}, []string{"deluxe"}},
		{"amenity alias", Criteria{Range: dec, Amenities: []string{"Bath Tub"}}, []string{"family"}},
		{"nothing matches", Criteria{Range: dec, Beds: 3}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.FindCandidates(context.Background(), rooms, tt.c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rooms, want %v", len(got), tt.want)
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("room[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilter_ShortCircuitsBeforeStore(t *testing.T) {
	reader := &mockReader{}
	filter := NewFilter(NewChecker(reader))
	rooms := []model.Room{{ID: "small", MaxGuests: 1, NumBeds: 1}}

	_, err := filter.FindCandidates(context.Background(), rooms, Criteria{
		Range:  mustRange(t, "2025-12-10", "2025-12-12"),
		Guests: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if reader.calls != 0 {
		t.Errorf("store should not be read for a room failing capacity, got %d calls", reader.calls)
	}
}
