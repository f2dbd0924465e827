package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/datatree/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "datatree:"

// Snapshot keys and the index live in separate namespaces under the prefix,
// so any snapshot id (including "index") is a valid key.
const (
	treeNamespace = "tree:"
	indexName     = "index"
)

// noExpiryScore is used as the index score of snapshots without TTL (2100-01-01).
const noExpiryScore = 4102444800

// Store implements ports.SnapshotStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for snapshots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + treeNamespace + id
}

func (s *Store) indexKey() string {
	return s.prefix + indexName
}

// Save persists the tree wire form to Redis.
func (s *Store) Save(ctx context.Context, id string, tree domain.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	pipe := s.client.TxPipeline()

	// Use 0 for no expiration if ttl is not set.
	pipe.Set(ctx, s.key(id), data, s.ttl)

	// Score = expiry time, so List can prune expired IDs lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = noExpiryScore
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: id,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the tree from Redis.
func (s *Store) Load(ctx context.Context, id string) (domain.Tree, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var tree domain.Tree
	if err := json.Unmarshal(val, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}
	return tree, nil
}

// Delete removes the snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the IDs of live snapshots, pruning expired ones from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired snapshots: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
