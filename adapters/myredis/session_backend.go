package myredis

import (
	"context"
	"fmt"

	"reeferlink/service"

	"github.com/go-redis/redis/v8"
)

// sessionBackend keeps each session scope in one redis hash (key: {prefix}:{scope}).
type sessionBackend struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionBackend creates redis implementation of interfaces.SessionBackend.
func NewSessionBackend(client redis.UniversalClient, prefix string) *sessionBackend {
	return &sessionBackend{
		client: client,
		prefix: prefix,
	}
}

func (b *sessionBackend) ReadSession(ctx context.Context, scope string) (map[string]string, error) {
	fields, err := b.client.HGetAll(ctx, b.generateKey(scope)).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis read session error", fmt.Errorf("can't read session (scope='%s'), err: %w", scope, err))
	}
	return fields, nil
}

// WriteSession replaces the hash inside MULTI/EXEC so readers never see a mix of old and new fields.
func (b *sessionBackend) WriteSession(ctx context.Context, scope string, fields map[string]string) error {
	key := b.generateKey(scope)
	values := make([]interface{}, 0, 2*len(fields))
	for k, v := range fields {
		values = append(values, k, v)
	}

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.HSet(ctx, key, values...)
		}
		return nil
	})
	if err != nil {
		return service.NewInternalServerError("Redis write session error", fmt.Errorf("can't write session (scope='%s'), err: %w", scope, err))
	}
	return nil
}

func (b *sessionBackend) DeleteSession(ctx context.Context, scope string) error {
	err := b.client.Del(ctx, b.generateKey(scope)).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete session error", fmt.Errorf("can't delete session (scope='%s'), err: %w", scope, err))
	}
	return nil
}

func (b *sessionBackend) generateKey(scope string) string {
	return b.prefix + ":" + scope
}
