// Package queueredis implements piper.Queue on top of Redis lists, so a
// pipeline's pending/output queues can be swapped from the in-process
// default to a shared, externally-inspectable backend via
// piper.Config.QueueFactory. It follows the teacher pack's Redis client
// usage (internal/ratelimiter/persistence/redis.go): a thin wrapper around
// a minimal client interface, errors wrapped with %w, keys namespaced by a
// caller-supplied prefix.
package queueredis

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/dataflowhq/piper"
)

// Client abstracts the subset of *redis.Client this package needs, so tests
// can substitute a fake without a running server.
type Client interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	LPopCount(ctx context.Context, key string, count int) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// Queue is a piper.Queue backed by a single Redis list named key. Items are
// gob-encoded, so any concrete type placed in the queue must be registered
// with encoding/gob if it isn't a builtin (gob.Register).
//
// piper.Queue has no context parameter, so every call here uses ctx as
// fixed at construction; callers needing per-call deadlines should not use
// this backend.
type Queue struct {
	client Client
	ctx    context.Context
	key    string
}

// New returns a Queue operating on key, using ctx for every Redis call.
func New(ctx context.Context, client Client, key string) *Queue {
	return &Queue{client: client, ctx: ctx, key: key}
}

// NewFactory returns a piper.QueueFactory whose queues are Redis lists
// under keyPrefix, one per call, named keyPrefix + an incrementing
// sequence. Build calls the factory once per leaf plus once for the root's
// output queue, so each gets its own list.
func NewFactory(ctx context.Context, client Client, keyPrefix string) piper.QueueFactory {
	var seq atomic.Uint64
	return func() piper.Queue {
		n := seq.Add(1)
		return New(ctx, client, fmt.Sprintf("%s:%d", keyPrefix, n))
	}
}

func (q *Queue) Enqueue(items ...any) {
	if len(items) == 0 {
		return
	}
	encoded, err := encodeAll(items)
	if err != nil {
		panic(fmt.Errorf("queueredis: encode: %w", err))
	}
	if err := q.client.RPush(q.ctx, q.key, encoded...).Err(); err != nil {
		panic(fmt.Errorf("queueredis: rpush %s: %w", q.key, err))
	}
}

func (q *Queue) Requeue(items ...any) {
	if len(items) == 0 {
		return
	}
	encoded, err := encodeAll(items)
	if err != nil {
		panic(fmt.Errorf("queueredis: encode: %w", err))
	}
	// LPush pushes one at a time from the left, so push in reverse to
	// preserve items' relative order at the head.
	reversed := make([]any, len(encoded))
	for i, v := range encoded {
		reversed[len(encoded)-1-i] = v
	}
	if err := q.client.LPush(q.ctx, q.key, reversed...).Err(); err != nil {
		panic(fmt.Errorf("queueredis: lpush %s: %w", q.key, err))
	}
}

func (q *Queue) Dequeue(n int) []any {
	if n <= 0 {
		n = 1
	}
	raw, err := q.client.LPopCount(q.ctx, q.key, n).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		panic(fmt.Errorf("queueredis: lpop %s: %w", q.key, err))
	}
	out := make([]any, 0, len(raw))
	for _, s := range raw {
		v, err := decode(s)
		if err != nil {
			panic(fmt.Errorf("queueredis: decode: %w", err))
		}
		out = append(out, v)
	}
	return out
}

func (q *Queue) Ready() int {
	n, err := q.client.LLen(q.ctx, q.key).Result()
	if err != nil {
		panic(fmt.Errorf("queueredis: llen %s: %w", q.key, err))
	}
	return int(n)
}

func encodeAll(items []any) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(&item); err != nil {
			return nil, err
		}
		out[i] = buf.String()
	}
	return out, nil
}

func decode(s string) (any, error) {
	var item any
	if err := gob.NewDecoder(bytes.NewReader([]byte(s))).Decode(&item); err != nil {
		return nil, err
	}
	return item, nil
}
