package mycache

import "context"

// nopCache always misses: used when no redis is configured.
type nopCache[T any] struct{}

func newNopCache[T any](c context.Context) (*nopCache[T], func(), error) {
	return &nopCache[T]{}, func() {}, nil
}

func (n *nopCache[T]) Get(c context.Context, key string) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (n *nopCache[T]) Set(c context.Context, key string, value T) error {
	return nil
}

func (n *nopCache[T]) Delete(c context.Context, key string) error {
	return nil
}
