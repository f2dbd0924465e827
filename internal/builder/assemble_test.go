package builder

import (
	"testing"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/aretw0/datatree/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collidingSeed() domain.Seed {
	return domain.Seed{
		Actions: []domain.ActionRecord{
			{Config: domain.ActionConfig{ID: "a1", Name: "Shared", PluginType: "API"}},
		},
		Widgets: map[string]domain.WidgetRecord{
			"w1": {Name: "Shared", Type: registry.TypeText},
		},
	}
}

func TestAssemble_WidgetShadowsAction(t *testing.T) {
	var warnings []*domain.CollisionWarning
	b := New(testRegistry(), WithLifecycleHooks(domain.LifecycleHooks{
		OnCollision: func(w *domain.CollisionWarning) { warnings = append(warnings, w) },
	}))

	tree, err := b.Build(collidingSeed())
	require.NoError(t, err)

	assert.Equal(t, domain.KindWidget, tree["Shared"].Kind())
	require.Len(t, warnings, 1)
	assert.Equal(t, &domain.CollisionWarning{Name: "Shared", Existing: domain.KindAction, Incoming: domain.KindWidget}, warnings[0])
}

func TestAssemble_StrictNames(t *testing.T) {
	b := New(testRegistry(), WithStrictNames(true))

	tree, err := b.Build(collidingSeed())
	assert.Nil(t, tree)
	var warning *domain.CollisionWarning
	require.ErrorAs(t, err, &warning)
	assert.Equal(t, "Shared", warning.Name)
}

func TestAssemble_ReservedKeys(t *testing.T) {
	var warnings []*domain.CollisionWarning
	b := New(testRegistry(), WithLifecycleHooks(domain.LifecycleHooks{
		OnCollision: func(w *domain.CollisionWarning) { warnings = append(warnings, w) },
	}))

	tree, err := b.Build(domain.Seed{
		Actions: []domain.ActionRecord{
			{Config: domain.ActionConfig{ID: "a1", Name: domain.KeyAppState, PluginType: "API"}},
		},
		Widgets: map[string]domain.WidgetRecord{
			"w1": {Name: domain.KeyPageList, Type: registry.TypeText},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.KindPageList, tree[domain.KeyPageList].Kind())
	assert.Equal(t, domain.KindAppState, tree[domain.KeyAppState].Kind())
	assert.Len(t, warnings, 2)
}

func TestAssemble_EmptySeed(t *testing.T) {
	tree, err := New(testRegistry()).Build(domain.Seed{})
	require.NoError(t, err)

	assert.Len(t, tree, 2)
	pages := tree[domain.KeyPageList].(*domain.PageList)
	assert.Empty(t, pages.Pages)
	app := tree[domain.KeyAppState].(*domain.AppState)
	assert.NotNil(t, app.Data)
}

func TestAssemble_EveryEntryIsTagged(t *testing.T) {
	tree, err := New(testRegistry()).Build(scenarioSeed())
	require.NoError(t, err)

	for name, e := range tree {
		switch e.(type) {
		case *domain.Action, *domain.Widget, *domain.PageList, *domain.AppState:
		default:
			t.Errorf("entry %q has unexpected type %T", name, e)
		}
	}
}

func TestIsComposite(t *testing.T) {
	assert.False(t, isComposite(nil))
	assert.False(t, isComposite("abc"))
	assert.False(t, isComposite(3.5))
	assert.False(t, isComposite(true))
	assert.True(t, isComposite([]any{}))
	assert.True(t, isComposite(map[string]any{}))
	assert.True(t, isComposite(&struct{}{}))
}

func TestCheckAcyclic(t *testing.T) {
	shared := []any{1}
	assert.NoError(t, checkAcyclic(map[string]any{"a": shared, "b": shared}), "shared siblings are not cycles")

	list := []any{nil}
	list[0] = list
	assert.ErrorIs(t, checkAcyclic(list), errCyclicValue)

	type node struct{ Next *node }
	n := &node{}
	n.Next = n
	assert.ErrorIs(t, checkAcyclic(n), errCyclicValue)
}
