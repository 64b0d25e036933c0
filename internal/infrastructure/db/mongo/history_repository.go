package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

const historiesCollection = "histories"

type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(historiesCollection)}
}

type mongoHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	IPAddress string             `bson:"ip_address"`
	Location  string             `bson:"location"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *HistoryRepository) Create(ctx context.Context, h *domain.History) (*domain.History, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(h.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert history: bad user id: %w", err)
	}

	doc := mongoHistory{
		UserID:    userID,
		IPAddress: h.IPAddress,
		Location:  h.Location,
		CreatedAt: h.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}

	created := *h
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListByUser returns userID's records, most recent first. The user filter is
// applied here, not by the caller: there is no way to list another user's
// history through this repository.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.History, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("list history: bad user id: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer cur.Close(ctx)

	histories := make([]*domain.History, 0)
	for cur.Next(ctx) {
		var mh mongoHistory
		if err := cur.Decode(&mh); err != nil {
			return nil, fmt.Errorf("list history: decode: %w", err)
		}
		histories = append(histories, &domain.History{
			ID:        mh.ID.Hex(),
			UserID:    mh.UserID.Hex(),
			IPAddress: mh.IPAddress,
			Location:  mh.Location,
			CreatedAt: mh.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return histories, nil
}

// DeleteByUser removes the listed records owned by userID and reports the
// count. The delete filter pairs _id with user_id, so ids belonging to other
// users simply do not match.
func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID string, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("delete history: bad user id: %w", err)
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// Unknown id formats can't match anything; skip rather than fail
			// the whole batch.
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"_id":     bson.M{"$in": oids},
		"user_id": uid,
	})
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the index backing per-user listing.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
