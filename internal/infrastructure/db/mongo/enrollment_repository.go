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

const enrollmentCollection = "course_enrollments"

type MongoEnrollmentRepository struct {
	coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *MongoEnrollmentRepository {
	return &MongoEnrollmentRepository{coll: db.Collection(enrollmentCollection)}
}

// EnsureIndexes creates the unique (course, user) index. It is the
// backstop for the check-then-insert race in Enroll: concurrent grants
// for the same pair both pass the existence check, but only one insert
// succeeds.
func (r *MongoEnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create enrollment indexes: %w", err)
	}
	return nil
}

func (r *MongoEnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	doc := enrollmentDoc{
		CourseID:   e.CourseID,
		UserID:     e.UserID,
		GrantedBy:  e.GrantedBy,
		EnrolledAt: e.EnrolledAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEnrollmentExists
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	created := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoEnrollmentRepository) Exists(ctx context.Context, courseID, userID string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"course_id": courseID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find enrollment: %w", err)
	}
	return true, nil
}

func (r *MongoEnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"course_id": courseID})
}

func (r *MongoEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoEnrollmentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Enrollment, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Enrollment
	for cur.Next(ctx) {
		var e enrollmentDoc
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode enrollment: %w", err)
		}
		out = append(out, e.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return out, nil
}

type enrollmentDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CourseID   string             `bson:"course_id"`
	UserID     string             `bson:"user_id"`
	GrantedBy  string             `bson:"granted_by,omitempty"`
	EnrolledAt time.Time          `bson:"enrolled_at"`
}

func (e *enrollmentDoc) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:         e.ID.Hex(),
		CourseID:   e.CourseID,
		UserID:     e.UserID,
		GrantedBy:  e.GrantedBy,
		EnrolledAt: e.EnrolledAt,
	}
}
