package domain

import "time"

// Discussion is a course-scoped discussion thread. CreatedBy is stamped
// once at creation and is the sole input to the ownership check; legacy
// records imported without it carry an empty string.
type Discussion struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	CourseID    string    `json:"course_id" bson:"course_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Post is a single reply inside a discussion thread.
type Post struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	DiscussionID string    `json:"discussion_id" bson:"discussion_id"`
	Content      string    `json:"content" bson:"content"`
	UserID       string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
