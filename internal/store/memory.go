package store

import (
	"context"
	"sync"
)

type memoryCollection struct {
	docs  map[string][]byte
	order []string
}

// MemoryStore é o driver padrão; os dados somem ao encerrar o processo.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string][]byte)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Insert(ctx context.Context, collection, id string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c.docs[id]; exists {
		return ErrDuplicateID
	}
	c.docs[id] = append([]byte(nil), doc...)
	c.order = append(c.order, id)
	return nil
}

func (s *MemoryStore) Replace(ctx context.Context, collection, id string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c.docs[id]; !exists {
		return ErrNotFound
	}
	c.docs[id] = append([]byte(nil), doc...)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *MemoryStore) All(ctx context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([][]byte, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, append([]byte(nil), c.docs[id]...))
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
