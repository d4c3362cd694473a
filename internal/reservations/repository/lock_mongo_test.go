package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	reservationerrors "hotelbook/internal/reservations/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockLockCollection struct {
	mu            sync.Mutex
	InsertOneFunc func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	UpdateOneFunc func(ctx context.Context, filter, update interface{}) (*mongo.UpdateResult, error)
	DeleteOneFunc func(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
	deletes       []bson.M
}

func (m *mockLockCollection) InsertOne(ctx context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return m.InsertOneFunc(ctx, document)
}

func (m *mockLockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if m.UpdateOneFunc == nil {
		return &mongo.UpdateResult{}, nil
	}
	return m.UpdateOneFunc(ctx, filter, update)
}

func (m *mockLockCollection) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	m.mu.Lock()
	m.deletes = append(m.deletes, filter.(bson.M))
	m.mu.Unlock()
	if m.DeleteOneFunc == nil {
		return &mongo.DeleteResult{DeletedCount: 1}, nil
	}
	return m.DeleteOneFunc(ctx, filter)
}

var errDuplicateLock = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}

func TestMongoRoomLocker_AcquireAndRelease(t *testing.T) {
	var inserted []*model.RoomLock
	coll := &mockLockCollection{
		InsertOneFunc: func(_ context.Context, document interface{}) (*mongo.InsertOneResult, error) {
			lock := document.(*model.RoomLock)
			inserted = append(inserted, lock)
			return &mongo.InsertOneResult{InsertedID: lock.ID}, nil
		},
	}
	l := newMongoRoomLocker(coll, time.Minute, time.Second, logger.Discard())

	release, err := l.Lock(context.Background(), "R002", "R001")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	if len(inserted) != 2 || inserted[0].ID != "room_lock_R001" || inserted[1].ID != "room_lock_R002" {
		t.Fatalf("locks not taken in room order: %+v", inserted)
	}
	owner := inserted[0].Owner
	if owner == "" || inserted[1].Owner != owner {
		t.Fatalf("locks should share one owner token, got %q and %q", inserted[0].Owner, inserted[1].Owner)
	}
	if got := inserted[0].ExpiresAt.Sub(inserted[0].CreatedAt); got != time.Minute {
		t.Errorf("lock lifetime = %v, want %v", got, time.Minute)
	}

	release()
	release()

	if len(coll.deletes) != 2 {
		t.Fatalf("expected 2 deletes after a double release, got %d", len(coll.deletes))
	}
	for i, filter := range coll.deletes {
		if filter["_id"] != inserted[i].ID || filter["owner"] != owner {
			t.Errorf("delete %d filter = %v, want _id %s and owner %s", i, filter, inserted[i].ID, owner)
		}
	}
}

func TestMongoRoomLocker_TakesOverExpiredLock(t *testing.T) {
	var stealFilter, stealUpdate bson.M
	coll := &mockLockCollection{
		InsertOneFunc: func(context.Context, interface{}) (*mongo.InsertOneResult, error) {
			return nil, errDuplicateLock
		},
		UpdateOneFunc: func(_ context.Context, filter, update interface{}) (*mongo.UpdateResult, error) {
			stealFilter, stealUpdate = filter.(bson.M), update.(bson.M)
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	l := newMongoRoomLocker(coll, time.Minute, 0, logger.Discard())

	before := time.Now()
	release, err := l.Lock(context.Background(), "R004")
	if err != nil {
		t.Fatalf("Lock should take over an expired lock, got %v", err)
	}

	if stealFilter["_id"] != "room_lock_R004" {
		t.Errorf("takeover filter _id = %v", stealFilter["_id"])
	}
	expiry, ok := stealFilter["expires_at"].(bson.M)
	if !ok {
		t.Fatalf("takeover filter must only match expired locks, got %v", stealFilter)
	}
	if cutoff, _ := expiry["$lte"].(time.Time); cutoff.Before(before) {
		t.Errorf("expiry cutoff %v is earlier than the attempt", cutoff)
	}

	set := stealUpdate["$set"].(bson.M)
	owner, _ := set["owner"].(string)
	if owner == "" {
		t.Fatalf("takeover must record a new owner, got %v", set)
	}

	release()
	if len(coll.deletes) != 1 || coll.deletes[0]["owner"] != owner {
		t.Errorf("release should delete with the taking owner %s, got %v", owner, coll.deletes)
	}
}

func TestMongoRoomLocker_LiveLockTimesOut(t *testing.T) {
	coll := &mockLockCollection{
		InsertOneFunc: func(_ context.Context, document interface{}) (*mongo.InsertOneResult, error) {
			if document.(*model.RoomLock).ID == "room_lock_R002" {
				return nil, errDuplicateLock
			}
			return &mongo.InsertOneResult{}, nil
		},
		UpdateOneFunc: func(context.Context, interface{}, interface{}) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{}, nil
		},
	}
	l := newMongoRoomLocker(coll, time.Minute, 0, logger.Discard())

	_, err := l.Lock(context.Background(), "R001", "R002")
	if !errors.Is(err, reservationerrors.ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
	if len(coll.deletes) != 1 || coll.deletes[0]["_id"] != "room_lock_R001" {
		t.Errorf("the lock already taken should be released, got %v", coll.deletes)
	}
}

func TestMongoRoomLocker_InsertError(t *testing.T) {
	boom := errors.New("server selection timeout")
	coll := &mockLockCollection{
		InsertOneFunc: func(context.Context, interface{}) (*mongo.InsertOneResult, error) {
			return nil, boom
		},
		UpdateOneFunc: func(context.Context, interface{}, interface{}) (*mongo.UpdateResult, error) {
			t.Error("takeover must not run for non-duplicate errors")
			return &mongo.UpdateResult{}, nil
		},
	}
	l := newMongoRoomLocker(coll, time.Minute, time.Second, logger.Discard())

	_, err := l.Lock(context.Background(), "R001")
	if !errors.Is(err, boom) || errors.Is(err, reservationerrors.ErrLockTimeout) {
		t.Fatalf("expected the insert error, got %v", err)
	}
}
