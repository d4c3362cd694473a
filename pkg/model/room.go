package model

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomSuite  RoomType = "Suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite:
		return true
	}
	return false
}

type Room struct {
	ID           string   `json:"room_id"`
	Type         RoomType `json:"room_type"`
	MaxGuests    int      `json:"max_guests"`
	NumBeds      int      `json:"num_beds"`
	NightlyPrice float64  `json:"nightly_price"`
	Amenities    []string `json:"amenities"`
}

// HasAll reports whether the room offers every amenity in want.
func (r Room) HasAll(want []string) bool {
	for _, a := range want {
		if !r.Has(a) {
			return false
		}
	}
	return true
}

func (r Room) Has(amenity string) bool {
	for _, a := range r.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}
