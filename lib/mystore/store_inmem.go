package mystore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

type inMemoryStore[T any] struct {
	sync.Mutex
	items map[string]T
}

func newInMemoryStore[T any](c context.Context) (*inMemoryStore[T], func(), error) {
	return &inMemoryStore[T]{
		items: make(map[string]T),
	}, func() {}, nil
}

func (s *inMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction: the store-wide lock serializes all concurrent
	// read-modify-write sequences
	s.Lock()

	// The marker carries the store's identity: a store touched under another
	// store's transaction must still take its own lock
	ctx := context.WithValue(c, ctxTransactionKey{}, s)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {
		// Rollback
		s.Unlock()

		return err
	}

	// Commit
	s.Unlock()

	return nil
}

// inTransaction reports whether this store's own lock is already held by a
// surrounding RunInTransaction.
func (s *inMemoryStore[T]) inTransaction(c context.Context) bool {
	owner, ok := c.Value(ctxTransactionKey{}).(*inMemoryStore[T])
	return ok && owner == s
}

func (s *inMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
	}

	s.items[uid] = value

	if nonTransactional {
		s.Unlock()
	}

	return nil
}

func (s *inMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
	}

	result, exists := s.items[uid]

	if nonTransactional {
		s.Unlock()
	}

	return result, exists, nil
}

func (s *inMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
	}

	result := make([]T, 0, len(s.items))
	for _, v := range s.items {
		result = append(result, v)
	}

	if nonTransactional {
		s.Unlock()
	}

	return result, nil
}

func (s *inMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(all))
	for _, item := range all {
		match, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if match {
			result = append(result, item)
		}
	}

	orderBy(result, orderByField)

	return result, nil
}

// matchesAll supports the equality compares that the datastore-backed
// implementation uses. Anything else fails loudly rather than silently
// diverging from the datastore behaviour.
func matchesAll[T any](item T, filters []Filter) (bool, error) {
	for _, f := range filters {
		if f.Compare != "=" {
			return false, fmt.Errorf("unsupported compare operator %q", f.Compare)
		}
		field := reflect.ValueOf(item).FieldByName(f.Field)
		if !field.IsValid() {
			return false, fmt.Errorf("unknown filter field %q", f.Field)
		}
		if !reflect.DeepEqual(field.Interface(), f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func orderBy[T any](items []T, orderByField string) {
	if orderByField == "" {
		return
	}

	descending := strings.HasPrefix(orderByField, "-")
	fieldName := strings.TrimPrefix(orderByField, "-")

	sort.SliceStable(items, func(i, j int) bool {
		less := fieldLess(
			reflect.ValueOf(items[i]).FieldByName(fieldName),
			reflect.ValueOf(items[j]).FieldByName(fieldName))
		if descending {
			return !less
		}
		return less
	})
}

func fieldLess(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	if at, ok := a.Interface().(time.Time); ok {
		bt := b.Interface().(time.Time)
		return at.Before(bt)
	}

	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	default:
		return false
	}
}
