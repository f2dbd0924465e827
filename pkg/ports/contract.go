package ports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractTree() domain.Tree {
	return domain.Tree{
		"getUsers": &domain.Action{
			ActionID:               "a1",
			Name:                   "getUsers",
			PluginType:             "API",
			Config:                 map[string]any{"url": "/users"},
			Data:                   map[string]any{"count": 3},
			DynamicBindingPathList: []domain.Property{{Key: "config.url"}},
		},
		"Text1": &domain.Widget{
			WidgetID:        "w1",
			Name:            "Text1",
			Type:            "TEXT_WIDGET",
			Properties:      map[string]any{"widgetId": "w1", "widgetName": "Text1", "type": "TEXT_WIDGET", "text": "hi"},
			DynamicBindings: map[string]bool{},
		},
		domain.KeyPageList: &domain.PageList{Pages: []any{}},
		domain.KeyAppState: &domain.AppState{Data: map[string]any{}},
	}
}

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore implementation
// adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	id := "contract-test-tree-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, id, contractTree())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.ElementsMatch(t, contractTree().Names(), loaded.Names())

		action, ok := loaded.Action("getUsers")
		require.True(t, ok, "action kind must survive persistence")
		assert.Equal(t, "a1", action.ActionID)
		// JSON persistence keeps numbers as json.Number.
		assert.Equal(t, json.Number("3"), action.Data.(map[string]any)["count"])

		widget, ok := loaded.Widget("Text1")
		require.True(t, ok, "widget kind must survive persistence")
		assert.Equal(t, "hi", widget.Properties["text"])
	})

	t.Run("Loaded Tree Is Isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractTree()))

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		w, _ := first.Widget("Text1")
		w.Properties["text"] = "mutated"

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		w2, _ := second.Widget("Text1")
		assert.Equal(t, "hi", w2.Properties["text"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, id, contractTree())
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, contractTree())
		_ = store.Save(ctx, id2, contractTree())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
