package mycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache[T any] struct {
	client  *redis.Client
	prefix  string
	baseTTL time.Duration
}

func newRedisCache[T any](c context.Context) (*redisCache[T], func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	err := client.Ping(c).Err()
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to redis: %s", err)
	}

	// Derive the key prefix from the type name, like mystore derives its kind
	val := new(T)
	prefix := fmt.Sprintf("%T", *val)
	if strings.Contains(prefix, ".") {
		prefix = strings.Split(prefix, ".")[1]
	}

	return &redisCache[T]{
			client:  client,
			prefix:  prefix,
			baseTTL: 15 * time.Minute,
		}, func() {
			client.Close()
		}, nil
}

func (r *redisCache[T]) key(key string) string {
	return r.prefix + ":" + key
}

func (r *redisCache[T]) Get(c context.Context, key string) (T, bool, error) {
	var value T

	data, err := r.client.Get(c, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("error fetching %s from redis: %s", r.key(key), err)
	}

	err = json.Unmarshal(data, &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling cached %s: %s", r.key(key), err)
	}

	return value, true, nil
}

func (r *redisCache[T]) Set(c context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling %s for cache: %s", r.key(key), err)
	}

	// jitter spreads out expiry of entries cached in the same burst
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	err = r.client.Set(c, r.key(key), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("error caching %s in redis: %s", r.key(key), err)
	}

	return nil
}

func (r *redisCache[T]) Delete(c context.Context, key string) error {
	err := r.client.Del(c, r.key(key)).Err()
	if err != nil {
		return fmt.Errorf("error deleting %s from redis: %s", r.key(key), err)
	}

	return nil
}
