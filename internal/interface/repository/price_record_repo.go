package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPriceRecordRepository implements PriceRecordRepository
type MongoPriceRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoPriceRecordRepository creates a new price record repository
func NewMongoPriceRecordRepository(db *mongo.Database) repository.PriceRecordRepository {
	collection := db.Collection("price_records")

	// Create index on trackerId for history queries
	ctx := context.Background()
	trackerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "trackerId", Value: 1},
			{Key: "checkedAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, trackerIndex)

	// Index on ownerUserId for per-user history
	ownerIndex := mongo.IndexModel{
		Keys: bson.M{"ownerUserId": 1},
	}
	collection.Indexes().CreateOne(ctx, ownerIndex)

	return &MongoPriceRecordRepository{
		collection: collection,
	}
}

// Save appends one observation record
func (r *MongoPriceRecordRepository) Save(ctx context.Context, record *entity.PriceRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	record.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByTrackerID returns a tracker's most recent observation records
func (r *MongoPriceRecordRepository) FindByTrackerID(ctx context.Context, trackerID string, limit int) ([]*entity.PriceRecord, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"trackerId": trackerID}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "checkedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.PriceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
