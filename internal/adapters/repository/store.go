// Package repository defines the generic entity store and its in-memory
// implementation.
package repository

import "context"

// Entity is anything that can be stored under its own key.
type Entity[K comparable] interface {
	Key() K
}

// Store provides concurrency-safe keyed access to entities.
// Callers need no external locking; every method is individually atomic.
type Store[K comparable, V Entity[K]] interface {
	// Insert stores entity if its key is free.
	// Returns false without modifying the store when the key already exists,
	// and ErrInvalidArgument when entity is nil.
	Insert(ctx context.Context, entity V) (bool, error)

	// Update replaces the entity stored under entity.Key().
	// Returns ErrNotFound if the key is absent (the entity is not created)
	// and ErrInvalidArgument when entity is nil.
	Update(ctx context.Context, entity V) (bool, error)

	// Delete removes key and reports whether anything was removed.
	Delete(ctx context.Context, key K) bool

	// Get returns the entity stored under key.
	Get(ctx context.Context, key K) (V, bool)

	// GetAll returns a point-in-time copy of all entities in no particular order.
	GetAll(ctx context.Context) []V

	// Count returns the number of stored entities.
	Count(ctx context.Context) int
}
