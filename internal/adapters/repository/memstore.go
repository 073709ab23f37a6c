package repository

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/okian/livescore/pkg/logger"
	"github.com/okian/livescore/pkg/metrics"
)

// Operation and result labels used for metrics.
const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
	opGet    = "get"
	opGetAll = "get_all"

	resultOK       = "ok"
	resultConflict = "conflict"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
)

// MemoryStore is a map-backed Store guarded by a RWMutex.
// Values are held by copy, so value-typed entities cannot be changed
// behind the store's back.
type MemoryStore[K comparable, V Entity[K]] struct {
	mu   sync.RWMutex
	byID map[K]V

	name   string
	logger logger.Logger
}

var _ Store[string, namedEntity] = (*MemoryStore[string, namedEntity])(nil)

// namedEntity only backs the compile-time interface check above.
type namedEntity struct{ id string }

func (e namedEntity) Key() string { return e.id }

// NewMemoryStore constructs an empty store.
func NewMemoryStore[K comparable, V Entity[K]](ctx context.Context, opts ...Option) *MemoryStore[K, V] {
	return NewMemoryStoreWith[K, V](ctx, nil, opts...)
}

// NewMemoryStoreWith constructs a store pre-populated with entities.
// Later duplicates of a key overwrite earlier ones; nil entities are skipped.
func NewMemoryStoreWith[K comparable, V Entity[K]](ctx context.Context, entities []V, opts ...Option) *MemoryStore[K, V] {
	o := options{name: "entities", logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < len(entities) {
		o.capacity = len(entities)
	}

	s := &MemoryStore[K, V]{
		byID:   make(map[K]V, o.capacity),
		name:   o.name,
		logger: o.logger.Named(o.name),
	}
	for _, e := range entities {
		if isNil(e) {
			continue
		}
		s.byID[e.Key()] = e
	}

	metrics.UpdateStoreEntities(s.name, len(s.byID))
	s.logger.Debug(ctx, "store created", logger.Int("entities", len(s.byID)))
	return s
}

// Name returns the store label.
func (s *MemoryStore[K, V]) Name() string { return s.name }

// Insert implements Store.Insert.
func (s *MemoryStore[K, V]) Insert(ctx context.Context, entity V) (bool, error) {
	start := time.Now()
	if isNil(entity) {
		s.record(opInsert, resultInvalid, start)
		return false, fmt.Errorf("%s insert: %w: nil entity", s.name, ErrInvalidArgument)
	}

	key := entity.Key()
	s.mu.Lock()
	if _, exists := s.byID[key]; exists {
		s.mu.Unlock()
		s.record(opInsert, resultConflict, start)
		s.logger.Debug(ctx, "insert skipped, key exists", logger.Any("key", key))
		return false, nil
	}
	s.byID[key] = entity
	count := len(s.byID)
	s.mu.Unlock()

	// Metrics outside the lock
	s.record(opInsert, resultOK, start)
	metrics.UpdateStoreEntities(s.name, count)
	return true, nil
}

// Update implements Store.Update.
func (s *MemoryStore[K, V]) Update(ctx context.Context, entity V) (bool, error) {
	start := time.Now()
	if isNil(entity) {
		s.record(opUpdate, resultInvalid, start)
		return false, fmt.Errorf("%s update: %w: nil entity", s.name, ErrInvalidArgument)
	}

	key := entity.Key()
	s.mu.Lock()
	if _, exists := s.byID[key]; !exists {
		s.mu.Unlock()
		s.record(opUpdate, resultNotFound, start)
		s.logger.Debug(ctx, "update of unknown key", logger.Any("key", key))
		return false, fmt.Errorf("%s update %v: %w", s.name, key, ErrNotFound)
	}
	s.byID[key] = entity
	s.mu.Unlock()

	s.record(opUpdate, resultOK, start)
	return true, nil
}

// Delete implements Store.Delete.
func (s *MemoryStore[K, V]) Delete(ctx context.Context, key K) bool {
	start := time.Now()

	s.mu.Lock()
	_, exists := s.byID[key]
	if exists {
		delete(s.byID, key)
	}
	count := len(s.byID)
	s.mu.Unlock()

	if !exists {
		s.record(opDelete, resultNotFound, start)
		return false
	}
	s.record(opDelete, resultOK, start)
	metrics.UpdateStoreEntities(s.name, count)
	return true
}

// Get implements Store.Get.
func (s *MemoryStore[K, V]) Get(ctx context.Context, key K) (V, bool) {
	start := time.Now()

	s.mu.RLock()
	v, ok := s.byID[key]
	s.mu.RUnlock()

	if ok {
		s.record(opGet, resultOK, start)
	} else {
		s.record(opGet, resultNotFound, start)
	}
	return v, ok
}

// GetAll implements Store.GetAll. The returned slice is owned by the caller.
func (s *MemoryStore[K, V]) GetAll(ctx context.Context) []V {
	start := time.Now()

	s.mu.RLock()
	out := make([]V, 0, len(s.byID))
	for _, v := range s.byID {
		out = append(out, v)
	}
	s.mu.RUnlock()

	s.record(opGetAll, resultOK, start)
	return out
}

// Count implements Store.Count.
func (s *MemoryStore[K, V]) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *MemoryStore[K, V]) record(op, result string, start time.Time) {
	metrics.RecordStoreOperation(s.name, op, result, float64(time.Since(start).Microseconds())/1000)
}

// isNil reports whether v is a nil pointer, interface, map, slice, func or chan.
func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
