package domain

import "errors"

// Form errors
var (
	ErrFormNotFound      = errors.New("form not found")
	ErrUnknownFormType   = errors.New("unknown form type")
	ErrInvalidFormStatus = errors.New("invalid form status")
	ErrTokenExhausted    = errors.New("could not issue a unique form token")
)

// Quiz errors
var (
	ErrQuizNotEligible   = errors.New("form is not eligible for verification")
	ErrQuizNotStarted    = errors.New("verification has not been started")
	ErrQuizBadAnswerSet  = errors.New("answer set does not match the issued questions")
	ErrQuizUnknownSample = errors.New("unknown question in answer set")
)
