package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/datatree/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the wire form of the tree in memory.
// Loaded trees never share memory with the saved one.
func (s *Store) Save(ctx context.Context, id string, tree domain.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = data
	return nil
}

// Load retrieves the tree from memory.
func (s *Store) Load(ctx context.Context, id string) (domain.Tree, error) {
	s.mu.RLock()
	data, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	var tree domain.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}
	return tree, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored snapshot IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
