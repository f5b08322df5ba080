package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusworks/campus-api/internal/core/domain"
)

const discussionCollection = "discussions"

type MongoDiscussionRepository struct {
	coll *mongo.Collection
}

func NewDiscussionRepository(db *mongo.Database) *MongoDiscussionRepository {
	return &MongoDiscussionRepository{coll: db.Collection(discussionCollection)}
}

func (r *MongoDiscussionRepository) Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	doc := discussionDoc{
		CourseID:    d.CourseID,
		Title:       d.Title,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert discussion: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoDiscussionRepository) FindByID(ctx context.Context, id string) (*domain.Discussion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid discussion id %q: %w", id, domain.ErrDiscussionNotFound)
	}

	var d discussionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("find discussion: %w", err)
	}
	return d.toDomain(), nil
}

func (r *MongoDiscussionRepository) List(ctx context.Context, courseID string) ([]*domain.Discussion, error) {
	filter := bson.M{}
	if courseID != "" {
		filter["course_id"] = courseID
	}
	return r.list(ctx, filter)
}

func (r *MongoDiscussionRepository) ListByCourseIDs(ctx context.Context, courseIDs []string) ([]*domain.Discussion, error) {
	if len(courseIDs) == 0 {
		return []*domain.Discussion{}, nil
	}
	return r.list(ctx, bson.M{"course_id": bson.M{"$in": courseIDs}})
}

func (r *MongoDiscussionRepository) list(ctx context.Context, filter bson.M) ([]*domain.Discussion, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Discussion
	for cur.Next(ctx) {
		var d discussionDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode discussion: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate discussions: %w", err)
	}
	return out, nil
}

func (r *MongoDiscussionRepository) Update(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	oid, err := primitive.ObjectIDFromHex(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid discussion id %q: %w", d.ID, domain.ErrDiscussionNotFound)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"course_id":   d.CourseID,
			"title":       d.Title,
			"description": d.Description,
			"updated_at":  d.UpdatedAt,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("update discussion: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrDiscussionNotFound
	}
	return d, nil
}

func (r *MongoDiscussionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid discussion id %q: %w", id, domain.ErrDiscussionNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete discussion: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDiscussionNotFound
	}
	return nil
}

type discussionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CourseID    string             `bson:"course_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedBy   string             `bson:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *discussionDoc) toDomain() *domain.Discussion {
	return &domain.Discussion{
		ID:          d.ID.Hex(),
		CourseID:    d.CourseID,
		Title:       d.Title,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
