package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

type sequence struct {
	client *redis.Client
	prefix string
}

// NewSequence creates a Sequence backed by INCR on prefix+"counter:"+name.
func NewSequence(client *redis.Client, prefix string) port.Sequence {
	return &sequence{client: client, prefix: prefix}
}

func (s *sequence) Next(ctx context.Context, name string) (int64, error) {
	n, err := s.client.Incr(ctx, s.prefix+"counter:"+name).Result()
	if err != nil {
		return 0, &domain.StorageError{Op: "next", Collection: "counters", Err: err}
	}
	return n, nil
}
