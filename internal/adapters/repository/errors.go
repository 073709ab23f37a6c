package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("entity not found")
)
