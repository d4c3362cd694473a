package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hotelbook/pkg/model"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 12 {
		t.Fatalf("expected 12 rooms, got %d", c.Len())
	}

	all := c.All()
	if all[0].ID != "R000" || all[11].ID != "R0011" {
		t.Errorf("catalog order not preserved: first=%s last=%s", all[0].ID, all[11].ID)
	}

	r, ok := c.Get("R008")
	if !ok {
		t.Fatal("R008 should exist")
	}
	if r.Type != model.RoomDouble || r.MaxGuests != 2 || r.NightlyPrice != 223 {
		t.Errorf("unexpected R008: %+v", r)
	}
	if !r.HasAll([]string{AmenityWiFi, AmenityAirConditioning, AmenityBathtub}) {
		t.Errorf("R008 amenities = %v", r.Amenities)
	}

	if _, ok := c.Get("R999"); ok {
		t.Error("unknown room should not be found")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	r, _ := c.Get("R0011")
	r.Amenities[0] = "tampered"
	all := c.All()
	all[0].NightlyPrice = 1

	again, _ := c.Get("R0011")
	if again.Amenities[0] == "tampered" {
		t.Error("Get must not expose internal amenity slice")
	}
	if first := c.All()[0]; first.NightlyPrice != 100 {
		t.Error("All must not expose internal rooms")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rooms   []model.Room
		wantErr string
	}{
		{
			name:    "empty",
			rooms:   nil,
			wantErr: "no rooms",
		},
		{
			name: "duplicate id",
			rooms: []model.Room{
				{ID: "A", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1},
				{ID: "A", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1},
			},
			wantErr: "duplicate room_id",
		},
		{
			name:    "unknown type",
			rooms:   []model.Room{{ID: "A", Type: "Penthouse", MaxGuests: 1, NumBeds: 1}},
			wantErr: "unknown room_type",
		},
		{
			name:    "zero guests",
			rooms:   []model.Room{{ID: "A", Type: model.RoomSingle, NumBeds: 1}},
			wantErr: "max_guests must be positive",
		},
		{
			name:    "negative price",
			rooms:   []model.Room{{ID: "A", Type: model.RoomSingle, MaxGuests: 1, NumBeds: 1, NightlyPrice: -1}},
			wantErr: "nightly_price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rooms)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.json")
	body := `[
		{"room_id":"S1","room_type":"Single","max_guests":1,"num_beds":1,"nightly_price":90,"amenities":["Wi-Fi","Mini Fridge"]},
		{"room_id":"D1","room_type":"Double","max_guests":2,"num_beds":2,"nightly_price":140.5,"amenities":[]}
	]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 rooms, got %d", c.Len())
	}
	s1, _ := c.Get("S1")
	if !s1.HasAll([]string{AmenityWiFi, AmenityMiniFridge}) {
		t.Errorf("amenities not normalized: %v", s1.Amenities)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte(`{not json`), 0o600)
	if _, err := Load(bad); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("expected ErrInvalidCatalog for malformed file, got %v", err)
	}

	def, err := Load("")
	if err != nil || def.Len() != 12 {
		t.Errorf("empty path should load default catalog, got %v", err)
	}
}
