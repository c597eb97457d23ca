package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrTopicNotFound       = errors.New("topic not found")
	ErrTopicClosed         = errors.New("topic is closed")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrInvalidQuestion     = errors.New("correct index out of range for question options")
	ErrIncompleteAnswers   = errors.New("all questions must be answered before submitting")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrAlreadySubmitted    = errors.New("assignment already submitted")
	ErrInvalidTopicStatus  = errors.New("invalid topic status")
	ErrAISchemaValidation  = errors.New("AI response failed schema validation")
	ErrAccountSuspended    = errors.New("account suspended")
	ErrNotificationMissing = errors.New("notification not found")
)
