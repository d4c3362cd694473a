package availability

import (
	"context"

	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
)

// Criteria narrows the catalog for a search. Zero Guests or Beds matches any room.
type Criteria struct {
	Range     model.DateRange
	Guests    int
	Beds      int
	Amenities []string
}

type Filter struct {
	checker *Checker
}

func NewFilter(checker *Checker) *Filter {
	return &Filter{checker: checker}
}

// FindCandidates returns the rooms matching c in catalog order. Cheap checks
// run first so the store is only consulted for rooms that otherwise qualify.
func (f *Filter) FindCandidates(ctx context.Context, rooms []model.Room, c Criteria) ([]model.Room, error) {
	wanted := sanitizer.NormalizeAmenities(c.Amenities)

	candidates := []model.Room{}
	for _, room := range rooms {
		if room.MaxGuests < c.Guests {
			continue
		}
		if room.NumBeds < c.Beds {
			continue
		}
		if len(wanted) > 0 && !room.HasAll(wanted) {
			continue
		}

		ok, err := f.checker.IsAvailable(ctx, room.ID, c.Range)
		if err != nil {
			return nil, err
		}
		if ok {
			candidates = append(candidates, room)
		}
	}
	return candidates, nil
}
