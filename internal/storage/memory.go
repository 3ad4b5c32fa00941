package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/s3share/internal/common"
)

// MemoryStore keeps objects in process memory. It is meant for local
// development and tests; contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

func (m *MemoryStore) Put(ctx context.Context, key string, obj Object, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := make([]byte, len(obj.Body))
	copy(body, obj.Body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Body: body, ContentType: obj.ContentType}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return Object{}, common.ErrorNotFound
	}
	body := make([]byte, len(obj.Body))
	copy(body, obj.Body)
	return Object{Body: body, ContentType: obj.ContentType}, nil
}
