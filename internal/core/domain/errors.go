package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentExists   = errors.New("user already enrolled")
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrMessageNotFound    = errors.New("message not found")
)
