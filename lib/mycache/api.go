package mycache

import (
	"context"
	"os"
)

// Cache is a read-through cache in front of a Store. A miss is not an error.
type Cache[T any] interface {
	Get(c context.Context, key string) (T, bool, error)
	Set(c context.Context, key string, value T) error
	Delete(c context.Context, key string) error
}

func New[T any](c context.Context) (Cache[T], func(), error) {
	if os.Getenv("REDIS_ADDR") != "" {
		return newRedisCache[T](c)
	}

	return newNopCache[T](c)
}
