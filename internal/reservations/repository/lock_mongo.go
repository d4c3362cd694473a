package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	reservationerrors "hotelbook/internal/reservations/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	LockCollectionName = "Booking_locks"

	lockPollInterval = 50 * time.Millisecond
)

// lockCollection is the subset of *mongo.Collection the locker needs.
type lockCollection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// MongoRoomLocker holds advisory room locks as documents keyed by room, so
// several service instances sharing a database serialize writes per room.
type MongoRoomLocker struct {
	collection lockCollection
	ttl        time.Duration
	wait       time.Duration
	log        *logger.Logger
}

func NewMongoRoomLocker(client *mongo.Client, database string, ttl, wait time.Duration, log *logger.Logger) *MongoRoomLocker {
	return newMongoRoomLocker(client.Database(database).Collection(LockCollectionName), ttl, wait, log)
}

func newMongoRoomLocker(collection lockCollection, ttl, wait time.Duration, log *logger.Logger) *MongoRoomLocker {
	return &MongoRoomLocker{
		collection: collection,
		ttl:        ttl,
		wait:       wait,
		log:        log,
	}
}

func lockID(roomID string) string {
	return fmt.Sprintf("room_lock_%s", roomID)
}

func (l *MongoRoomLocker) Lock(ctx context.Context, roomIDs ...string) (func(), error) {
	ids := normalizeRoomIDs(roomIDs)
	owner := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	held := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := l.acquire(ctx, lockID(id), owner, deadline); err != nil {
			l.release(held, owner)
			return nil, err
		}
		held = append(held, lockID(id))
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(held, owner) }) }, nil
}

func (l *MongoRoomLocker) acquire(ctx context.Context, id, owner string, deadline time.Time) error {
	for {
		now := time.Now()
		lock := &model.RoomLock{
			ID:        id,
			Owner:     owner,
			ExpiresAt: now.Add(l.ttl),
			CreatedAt: now,
		}

		_, err := l.collection.InsertOne(ctx, lock)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to acquire room lock %s: %w", id, err)
		}

		// The TTL monitor only runs about once a minute, so a crashed holder's
		// lock is taken over here as soon as it expires.
		stolen, err := l.stealExpired(ctx, id, owner, now)
		if err != nil {
			return err
		}
		if stolen {
			l.log.Warn("took over expired room lock", "lock_id", id)
			return nil
		}

		if time.Now().After(deadline) {
			return reservationerrors.ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}

func (l *MongoRoomLocker) stealExpired(ctx context.Context, id, owner string, now time.Time) (bool, error) {
	result, err := l.collection.UpdateOne(ctx,
		bson.M{"_id": id, "expires_at": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{
			"owner":      owner,
			"expires_at": now.Add(l.ttl),
			"created_at": now,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to take over room lock %s: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}

// release runs on a fresh context so that a cancelled request still frees
// its locks.
func (l *MongoRoomLocker) release(ids []string, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, id := range ids {
		if _, err := l.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner}); err != nil {
			l.log.Error("failed to release room lock",
				"lock_id", id,
				"error", err,
			)
		}
	}
}
