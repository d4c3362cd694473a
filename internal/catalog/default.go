package catalog

import "hotelbook/pkg/model"

const (
	AmenityWiFi            = "wifi"
	AmenityAirConditioning = "air_conditioning"
	AmenityBathtub         = "bathtub"
	AmenityMiniFridge      = "mini_fridge"
)

var defaultRooms = []model.Room{
	{ID: "R000", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1, NightlyPrice: 100},
	{ID: "R001", Type: model.RoomDouble, MaxGuests: 1, NumBeds: 1, NightlyPrice: 150},
	{ID: "R002", Type: model.RoomSuite, MaxGuests: 1, NumBeds: 1, NightlyPrice: 300},
	{ID: "R003", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1, NightlyPrice: 110, Amenities: []string{AmenityWiFi}},
	{ID: "R004", Type: model.RoomDouble, MaxGuests: 1, NumBeds: 1, NightlyPrice: 125, Amenities: []string{AmenityAirConditioning}},
	{ID: "R005", Type: model.RoomSuite, MaxGuests: 4, NumBeds: 2, NightlyPrice: 538, Amenities: []string{AmenityBathtub}},
	{ID: "R006", Type: model.RoomSuite, MaxGuests: 4, NumBeds: 2, NightlyPrice: 552, Amenities: []string{AmenityMiniFridge}},
	{ID: "R007", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1, NightlyPrice: 135, Amenities: []string{AmenityWiFi, AmenityAirConditioning}},
	{ID: "R008", Type: model.RoomDouble, MaxGuests: 2, NumBeds: 1, NightlyPrice: 223, Amenities: []string{AmenityWiFi, AmenityAirConditioning, AmenityBathtub}},
	{ID: "R009", Type: model.RoomSuite, MaxGuests: 4, NumBeds: 2, NightlyPrice: 340, Amenities: []string{AmenityBathtub, AmenityMiniFridge}},
	{ID: "R0010", Type: model.RoomSuite, MaxGuests: 4, NumBeds: 2, NightlyPrice: 323, Amenities: []string{AmenityWiFi, AmenityAirConditioning, AmenityBathtub}},
	{ID: "R0011", Type: model.RoomSuite, MaxGuests: 4, NumBeds: 2, NightlyPrice: 375, Amenities: []string{AmenityWiFi, AmenityAirConditioning, AmenityBathtub, AmenityMiniFridge}},
}

// Default returns the built-in twelve room property.
func Default() *Catalog {
	c, err := New(defaultRooms)
	if err != nil {
		panic(err)
	}
	return c
}
