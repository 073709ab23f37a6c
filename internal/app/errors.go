package service

import (
	"errors"

	"github.com/okian/livescore/internal/adapters/repository"
)

// Sentinel kinds surfaced by the lifecycle services. The store kinds are
// re-exported so callers need not import the repository package.
var (
	ErrInvalidArgument = repository.ErrInvalidArgument
	ErrNotFound        = repository.ErrNotFound
	// ErrConflict reports that a freshly generated id was already taken.
	ErrConflict = errors.New("entity already exists")
)
