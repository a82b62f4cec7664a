package memory

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-register-service/internal/storage"
)

// KV keeps documents in process memory. Used for tests and ephemeral runs.
type KV struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailSave, when set, is returned by every Save.
	FailSave error
}

func New() *KV {
	return &KV{docs: make(map[string][]byte)}
}

func (m *KV) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *KV) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.docs[key] = v
	return nil
}

// Keys lists the stored keys.
func (m *KV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	return keys
}

func (m *KV) Close() error { return nil }
