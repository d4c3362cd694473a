package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"hotelbook/internal/reservations/repository"
)

func TestCollections(t *testing.T) {
	defs := Collections()

	for _, name := range []string{repository.CollectionName, repository.LockCollectionName} {
		def, ok := defs[name]
		if !ok {
			t.Fatalf("missing collection %s", name)
		}
		if len(def.Indexes) == 0 {
			t.Errorf("%s has no indexes", name)
		}
		if _, ok := def.Validator["$jsonSchema"]; !ok {
			t.Errorf("%s validator has no $jsonSchema", name)
		}
	}
}

func TestBookingLocksExpire(t *testing.T) {
	idx := BookingLocksIndexes[0]
	keys, ok := idx.Keys.(bson.D)
	if !ok || len(keys) != 1 || keys[0].Key != "expires_at" {
		t.Fatalf("unexpected TTL index keys: %v", idx.Keys)
	}
	if idx.Options == nil || idx.Options.ExpireAfterSeconds == nil || *idx.Options.ExpireAfterSeconds != 0 {
		t.Error("lock index should expire documents at expires_at")
	}
}

func TestBookingValidatorRequiresStatus(t *testing.T) {
	schema := bookingSchema(t)
	required, _ := schema["required"].([]string)
	for _, field := range []string{"_id", "room_id", "status", "check_in", "check_out"} {
		found := false
		for _, r := range required {
			if r == field {
				found = true
			}
		}
		if !found {
			t.Errorf("%s should be required", field)
		}
	}
}

func bookingSchema(t *testing.T) bson.M {
	t.Helper()
	def := Collections()[repository.CollectionName]
	schema, ok := def.Validator["$jsonSchema"].(bson.M)
	if !ok {
		t.Fatal("booking $jsonSchema is not a bson.M")
	}
	return schema
}
