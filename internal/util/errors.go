package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidRole        = errors.New("invalid role")
	ErrOwnRoleChange      = errors.New("cannot change your own role")

	ErrCourseNotFound  = errors.New("course not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	ErrBlogNotFound       = errors.New("blog not found")
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrStoryNotFound      = errors.New("success story not found")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)
