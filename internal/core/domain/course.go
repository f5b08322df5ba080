package domain

import "time"

// Course is a unit of study that discussions hang off. Ordinary users
// gain access per course through enrollments; admins see every course.
type Course struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Enrollment grants one user access to one course. GrantedBy records
// the admin who granted the access.
type Enrollment struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CourseID   string    `json:"course_id" bson:"course_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	GrantedBy  string    `json:"granted_by,omitempty" bson:"granted_by,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at" bson:"enrolled_at"`
}
