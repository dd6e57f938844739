package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJournalRepository implements the JournalRepository interface
type MongoJournalRepository struct {
	collection *mongo.Collection
}

// NewMongoJournalRepository creates a new MongoDB journal repository
func NewMongoJournalRepository(db *mongo.Database) repository.JournalRepository {
	collection := db.Collection("journalEntries")

	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdAtIndex,
		statusIndex,
	})

	return &MongoJournalRepository{
		collection: collection,
	}
}

// Save saves a journal entry
func (r *MongoJournalRepository) Save(ctx context.Context, entry *entity.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.Status == "" {
		entry.Status = entity.JournalStatusPending
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// MarkFormatted stores the formatted note text
func (r *MongoJournalRepository) MarkFormatted(ctx context.Context, id string, formattedText string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"formattedText": formattedText,
			"status":        entity.JournalStatusFormatted,
		}},
	)
	return err
}

// MarkForwarded records that the note reached the capture webhook
func (r *MongoJournalRepository) MarkForwarded(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":      entity.JournalStatusForwarded,
			"forwardedAt": time.Now(),
		}},
	)
	return err
}

// MarkFailed records a processing failure
func (r *MongoJournalRepository) MarkFailed(ctx context.Context, id string, errorDetail string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":      entity.JournalStatusFailed,
			"errorDetail": errorDetail,
		}},
	)
	return err
}

// FindRecent returns the most recent journal entries
func (r *MongoJournalRepository) FindRecent(ctx context.Context, limit int) ([]*entity.JournalEntry, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*entity.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
