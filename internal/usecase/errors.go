package usecase

import "errors"

var (
	ErrNoProfile     = errors.New("session has no profile yet")
	ErrInvalidStatus = errors.New("invalid status")
	ErrStepNotFound  = errors.New("roadmap step not found")
)
