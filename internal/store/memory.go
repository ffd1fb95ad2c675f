package store

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values for the life of the process.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore returns an empty store. Entries never expire and no
// janitor goroutine is started.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, _ := v.(string)
	return s, true, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.c.Flush()
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	items := m.c.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
