package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "registrar/internal/bookings/errors"
	"registrar/pkg/config"
	"registrar/pkg/model"
)

const (
	CollectionName = "bookings"

	// Names of the unique indexes that back the two booking invariants. The
	// write path relies on them to tell a date clash from a church clash.
	IndexStateDate   = "state_date_unique"
	IndexStateChurch = "state_church_unique"

	duplicateKeyCode = 11000
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	ExistsByStateAndDate(ctx context.Context, state string, date model.Date) (bool, error)
	ExistsByStateAndChurch(ctx context.Context, state string, churchName string) (bool, error)
	FindAll(ctx context.Context, state string) ([]*model.Booking, error)
	FindDatesByState(ctx context.Context, state string) ([]model.Date, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database, cfg *config.Config) BookingRepository {
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a single store call by timeout, or by the caller's
// deadline when that is sooner.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if conflict := classifyWriteError(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) ExistsByStateAndDate(ctx context.Context, state string, date model.Date) (bool, error) {
	return r.exists(ctx, bson.M{"state": state, "date": dayRange(date)})
}

// dayRange matches any instant on date's calendar day, so documents stored
// with a time of day still count as taking that date.
func dayRange(date model.Date) bson.M {
	start := date.Time()
	return bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
}

func (r *mongoBookingRepository) ExistsByStateAndChurch(ctx context.Context, state string, churchName string) (bool, error) {
	return r.exists(ctx, bson.M{"state": state, "churchName": churchName})
}

func (r *mongoBookingRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.collection.FindOne(ctx, filter, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up booking: %w", err)
	}
	return true, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, state string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, buildStateFilter(state), listOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) FindDatesByState(ctx context.Context, state string) ([]model.Date, error) {
	if state == "" {
		return nil, bookingserrors.ErrInvalidState
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"date": 1, "_id": 0})
	cursor, err := r.collection.Find(ctx, buildStateFilter(state), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booked dates: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date model.Date `bson:"date"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booked dates: %w", err)
	}

	dates := make([]model.Date, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates, nil
}

func buildStateFilter(state string) bson.M {
	filter := bson.M{}
	if state != "" {
		filter["state"] = state
	}
	return filter
}

func listOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "_id", Value: 1},
	})
}

// classifyWriteError maps a duplicate key error on one of the invariant
// indexes to the matching conflict. It returns nil for any other error,
// including duplicates on _id or indexes it does not know.
func classifyWriteError(err error) error {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code != duplicateKeyCode {
				continue
			}
			if conflict := conflictForIndex(we.Message); conflict != nil {
				return conflict
			}
		}
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return conflictForIndex(err.Error())
	}
	return nil
}

func conflictForIndex(msg string) error {
	switch {
	case strings.Contains(msg, IndexStateChurch):
		return bookingserrors.ErrChurchConflict
	case strings.Contains(msg, IndexStateDate):
		return bookingserrors.ErrDateConflict
	default:
		return nil
	}
}
