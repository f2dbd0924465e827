package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/datatree/pkg/adapters/redis"
	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleTree() domain.Tree {
	return domain.Tree{
		"Text1": &domain.Widget{
			WidgetID:        "w1",
			Name:            "Text1",
			Type:            "TEXT_WIDGET",
			Properties:      map[string]any{"widgetId": "w1", "widgetName": "Text1", "type": "TEXT_WIDGET"},
			DynamicBindings: map[string]bool{},
		},
	}
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunSnapshotStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	err := store.Save(ctx, "tree-ttl", sampleTree())
	require.NoError(t, err)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "tree-ttl")

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "tree-ttl")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	// The index is pruned against the wall clock, so wait until the score is in the past.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "page-1", sampleTree())
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:tree:page-1"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page-1"}, ids)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, store.Save(context.Background(), "page-1", sampleTree()))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"tree:page-1"))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"index"))
}

func TestRedisStore_IndexIDIsOrdinary(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "page-1", sampleTree()))
	require.NoError(t, store.Save(ctx, "index", sampleTree()))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "page-1"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, len(sampleTree()), len(loaded))

	require.NoError(t, store.Delete(ctx, "index"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page-1"}, ids)
}
