package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	reservationerrors "hotelbook/internal/reservations/errors"
	"hotelbook/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisLockPrefix = "hotelbook:room_lock:"

// Deletes the key only while it still holds this owner's token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// lockClient is the subset of *redis.Client the locker needs.
type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type RedisRoomLocker struct {
	rdb  lockClient
	ttl  time.Duration
	wait time.Duration
	log  *logger.Logger
}

func NewRedisRoomLocker(rdb *redis.Client, ttl, wait time.Duration, log *logger.Logger) *RedisRoomLocker {
	return newRedisRoomLocker(rdb, ttl, wait, log)
}

func newRedisRoomLocker(rdb lockClient, ttl, wait time.Duration, log *logger.Logger) *RedisRoomLocker {
	return &RedisRoomLocker{rdb: rdb, ttl: ttl, wait: wait, log: log}
}

func (l *RedisRoomLocker) Lock(ctx context.Context, roomIDs ...string) (func(), error) {
	ids := normalizeRoomIDs(roomIDs)
	owner := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	held := make([]string, 0, len(ids))
	for _, id := range ids {
		key := redisLockPrefix + id
		if err := l.acquire(ctx, key, owner, deadline); err != nil {
			l.release(held, owner)
			return nil, err
		}
		held = append(held, key)
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(held, owner) }) }, nil
}

func (l *RedisRoomLocker) acquire(ctx context.Context, key, owner string, deadline time.Time) error {
	for {
		ok, err := l.rdb.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire room lock %s: %w", key, err)
		}
		if ok {
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

func (l *RedisRoomLocker) release(keys []string, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, key := range keys {
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, owner).Err(); err != nil {
			l.log.Error("failed to release room lock",
				"lock_key", key,
				"error", err,
			)
		}
	}
}
