package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	reservationerrors "hotelbook/internal/reservations/errors"
)

// RoomLocker serializes reservation writes per room. Lock blocks until every
// named room is held or the wait elapses, and returns a release func that is
// safe to call more than once.
type RoomLocker interface {
	Lock(ctx context.Context, roomIDs ...string) (release func(), err error)
}

// normalizeRoomIDs returns the ids sorted and deduplicated, so that callers
// locking several rooms always acquire them in the same order.
func normalizeRoomIDs(roomIDs []string) []string {
	ids := make([]string, 0, len(roomIDs))
	seen := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LocalRoomLocker holds per-room locks in process memory.
type LocalRoomLocker struct {
	mu    sync.Mutex
	rooms map[string]chan struct{}
	wait  time.Duration
}

func NewLocalRoomLocker(wait time.Duration) *LocalRoomLocker {
	return &LocalRoomLocker{
		rooms: make(map[string]chan struct{}),
		wait:  wait,
	}
}

func (l *LocalRoomLocker) sem(roomID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.rooms[roomID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.rooms[roomID] = ch
	}
	return ch
}

func (l *LocalRoomLocker) Lock(ctx context.Context, roomIDs ...string) (func(), error) {
	ids := normalizeRoomIDs(roomIDs)

	var timeout <-chan time.Time
	if l.wait > 0 {
		timer := time.NewTimer(l.wait)
		defer timer.Stop()
		timeout = timer.C
	}

	held := make([]chan struct{}, 0, len(ids))
	releaseHeld := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, id := range ids {
		ch := l.sem(id)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-timeout:
			releaseHeld()
			return nil, reservationerrors.ErrLockTimeout
		case <-ctx.Done():
			releaseHeld()
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(releaseHeld) }, nil
}
