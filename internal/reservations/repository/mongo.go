package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationerrors "hotelbook/internal/reservations/errors"
	mongotx "hotelbook/pkg/db/mongo"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionName = "Bookings"
)

type MongoStore struct {
	client       *mongo.Client
	collection   *mongo.Collection
	txManager    mongotx.TransactionManager
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoStore(client *mongo.Client, database string, readTimeout, writeTimeout time.Duration) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:       client,
		collection:   db.Collection(CollectionName),
		txManager:    mongotx.NewTransactionManager(client),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext is returned unchanged with a no-op cancel, as wrapping it
// would detach the operation from its transaction.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStore) Append(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reservationerrors.ErrDuplicateCode
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, code string, status model.BookingStatus) (bool, error) {
	return s.updateOne(ctx, code, bson.M{"status": status})
}

func (s *MongoStore) Supersede(ctx context.Context, oldCode, newCode string) (bool, error) {
	return s.updateOne(ctx, oldCode, bson.M{
		"status":        model.StatusCancelled,
		"superseded_by": newCode,
	})
}

func (s *MongoStore) updateOne(ctx context.Context, code string, set bson.M) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.writeTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": code}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s: %w", code, err)
	}
	return result.MatchedCount > 0, nil
}

func (s *MongoStore) Find(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	filter := bson.M{"_id": code}
	if !includeCancelled {
		filter["status"] = model.StatusConfirmed
	}

	var booking model.Booking
	if err := s.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (s *MongoStore) FindByRoom(ctx context.Context, roomID string) ([]*model.Booking, error) {
	return s.find(ctx, bson.M{"room_id": roomID})
}

func (s *MongoStore) All(ctx context.Context) ([]*model.Booking, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ExecuteTransaction runs fn in a Mongo session transaction. Store calls made
// with the ctx passed to fn join the transaction.
func (s *MongoStore) ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return fn(sessCtx)
	})
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.readTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}
