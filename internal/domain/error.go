package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrForbidden          = errors.New("instructor role required")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrLaunchInvalid      = errors.New("lti launch validation failed")
)
