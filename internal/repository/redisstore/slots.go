// Package redisstore keeps each slot under one key and updates it with an
// optimistic WATCH/MULTI transaction.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 10

// ErrTooManyConflicts is returned when a slot keeps changing under a writer.
var ErrTooManyConflicts = errors.New("redis: slot modified concurrently too many times")

// Slots is a redis-backed slot backend.
type Slots struct {
	client *redis.Client
	prefix string
}

// NewClient connects to redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewSlots stores slots under prefix+name.
func NewSlots(client *redis.Client, prefix string) *Slots {
	return &Slots{client: client, prefix: prefix}
}

func (r *Slots) key(name string) string { return r.prefix + name }

func (r *Slots) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *Slots) Mutate(ctx context.Context, name string, fn func([]byte) ([]byte, error)) error {
	key := r.key(name)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		out, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTooManyConflicts
}

func (r *Slots) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
