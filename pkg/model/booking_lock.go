package model

import "time"

// RoomLock is an advisory lock document held while a reservation write for a
// room is in flight. Expired documents are removed by a TTL index.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
