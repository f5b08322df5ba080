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

const courseCollection = "courses"

type MongoCourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *MongoCourseRepository {
	return &MongoCourseRepository{coll: db.Collection(courseCollection)}
}

func (r *MongoCourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	doc := courseDoc{
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid course id %q: %w", id, domain.ErrCourseNotFound)
	}

	var c courseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return c.toDomain(), nil
}

// FindByIDs returns the courses matching the given ids. Unparseable ids
// and ids with no matching document are dropped, not errors.
func (r *MongoCourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Course{}, nil
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *MongoCourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoCourseRepository) list(ctx context.Context, filter bson.M) ([]*domain.Course, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Course
	for cur.Next(ctx) {
		var c courseDoc
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		out = append(out, c.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return out, nil
}

func (r *MongoCourseRepository) Update(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid course id %q: %w", c.ID, domain.ErrCourseNotFound)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"name":        c.Name,
			"description": c.Description,
			"updated_at":  c.UpdatedAt,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (r *MongoCourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid course id %q: %w", id, domain.ErrCourseNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

type courseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (c *courseDoc) toDomain() *domain.Course {
	return &domain.Course{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
