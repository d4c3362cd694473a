package model

// ReservationRequest is the input to create and modify. Guests is optional;
// when set it must fit the room's capacity.
type ReservationRequest struct {
	RoomID   string `json:"room_id" validate:"required,max=50"`
	Guest    Guest  `json:"guest"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests,omitempty" validate:"min=0,max=20"`
}

type RoomSearch struct {
	CheckIn   string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests    int      `json:"guests" validate:"min=0,max=20"`
	Beds      int      `json:"beds" validate:"min=0,max=10"`
	Amenities []string `json:"amenities" validate:"max=20,dive,max=50"`
}
