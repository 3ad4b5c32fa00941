// Package storage is the object storage boundary. Callers see two narrow
// capabilities, Put and Get; the protocol behind them belongs to the
// implementation.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/s3share/internal/config"
)

// Object is a stored file.
type Object struct {
	Body        []byte
	ContentType string
}

// Putter stores an object under key on behalf of the holder of token.
type Putter interface {
	Put(ctx context.Context, key string, obj Object, token string) error
}

// Getter fetches the object stored under key. A missing object is reported
// as common.ErrorNotFound.
type Getter interface {
	Get(ctx context.Context, key string) (Object, error)
}

type Store interface {
	Putter
	Getter
}

// New returns the store selected by c.StorageBackend.
func New(ctx context.Context, c *config.Config) (Store, error) {
	switch c.StorageBackend {
	case config.StorageS3, "":
		return NewS3Store(ctx, c)
	case config.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
