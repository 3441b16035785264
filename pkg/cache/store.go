package cache

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("cache: key not found")
	ErrQuotaExceeded = errors.New("cache: storage quota exceeded")
)

// Store is the persisted tier. Keys arrive already namespaced by the Manager.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
