package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/redis/go-redis/v9"
)

// ConnectionLog is the append-only mentor connection log. Entries are never
// deduplicated.
type ConnectionLog interface {
	// Append stores c and returns its zero-based position in the log.
	Append(ctx context.Context, c model.Connection) (int64, error)
	// List returns up to limit entries starting at offset, and the log length.
	List(ctx context.Context, offset, limit int) ([]model.Connection, int64, error)
}

// RedisConnectionLog keeps the log as a Redis list of JSON documents.
type RedisConnectionLog struct {
	client *redis.Client
	key    string
}

func NewRedisConnectionLog(client *redis.Client) *RedisConnectionLog {
	return &RedisConnectionLog{client: client, key: model.ConnectionsKey}
}

func (l *RedisConnectionLog) Append(ctx context.Context, c model.Connection) (int64, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("marshal connection: %w", err)
	}
	n, err := l.client.RPush(ctx, l.key, data).Result()
	if err != nil {
		return 0, fmt.Errorf("append connection: %w", err)
	}
	return n - 1, nil
}

func (l *RedisConnectionLog) List(ctx context.Context, offset, limit int) ([]model.Connection, int64, error) {
	total, err := l.client.LLen(ctx, l.key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("count connections: %w", err)
	}
	out := []model.Connection{}
	if limit <= 0 || int64(offset) >= total {
		return out, total, nil
	}

	raw, err := l.client.LRange(ctx, l.key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("read connections: %w", err)
	}
	for _, item := range raw {
		var c model.Connection
		if err := json.Unmarshal([]byte(item), &c); err != nil {
			return nil, 0, fmt.Errorf("decode connection: %w", err)
		}
		out = append(out, c)
	}
	return out, total, nil
}

type MemoryConnectionLog struct {
	mu      sync.RWMutex
	entries []model.Connection
}

func NewMemoryConnectionLog() *MemoryConnectionLog {
	return &MemoryConnectionLog{}
}

func (l *MemoryConnectionLog) Append(ctx context.Context, c model.Connection) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, c)
	return int64(len(l.entries) - 1), nil
}

func (l *MemoryConnectionLog) List(ctx context.Context, offset, limit int) ([]model.Connection, int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := int64(len(l.entries))
	out := []model.Connection{}
	if limit <= 0 || offset >= len(l.entries) {
		return out, total, nil
	}
	end := offset + limit
	if end > len(l.entries) {
		end = len(l.entries)
	}
	return append(out, l.entries[offset:end]...), total, nil
}
