package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizNotAvailable     = errors.New("quiz not available")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrQuizAlreadyAttempted = errors.New("quiz already attempted, only one attempt is allowed")
	ErrAttemptForbidden     = errors.New("attempt belongs to another user")
	ErrInvalidSubmission    = errors.New("invalid submission payload")
)
