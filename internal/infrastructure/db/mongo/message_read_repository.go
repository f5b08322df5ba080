package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageReadCollection = "message_reads"

type MongoMessageReadRepository struct {
	coll *mongo.Collection
}

func NewMessageReadRepository(db *mongo.Database) *MongoMessageReadRepository {
	return &MongoMessageReadRepository{coll: db.Collection(messageReadCollection)}
}

// EnsureIndexes creates the unique (message, user) index so concurrent
// marks of the same conversation collapse into one receipt per message.
func (r *MongoMessageReadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "message_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create message read indexes: %w", err)
	}
	return nil
}

// MarkRead inserts one receipt per message. The insert is unordered so
// a duplicate receipt does not block the rest of the batch.
func (r *MongoMessageReadRepository) MarkRead(ctx context.Context, messageIDs []string, userID string, at time.Time) error {
	if len(messageIDs) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(messageIDs))
	for _, id := range messageIDs {
		docs = append(docs, messageReadDoc{MessageID: id, UserID: userID, ReadAt: at})
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert read receipts: %w", err)
	}
	return nil
}

func (r *MongoMessageReadRepository) ReadMessageIDs(ctx context.Context, messageIDs []string, userID string) (map[string]bool, error) {
	out := make(map[string]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{
		"message_id": bson.M{"$in": messageIDs},
		"user_id":    userID,
	})
	if err != nil {
		return nil, fmt.Errorf("find read receipts: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var d messageReadDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode read receipt: %w", err)
		}
		out[d.MessageID] = true
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate read receipts: %w", err)
	}
	return out, nil
}

type messageReadDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MessageID string             `bson:"message_id"`
	UserID    string             `bson:"user_id"`
	ReadAt    time.Time          `bson:"read_at"`
}
