package builder

import (
	"testing"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_PathRewrite(t *testing.T) {
	b := New(testRegistry())

	a, err := b.Action(domain.ActionRecord{
		Config: domain.ActionConfig{
			ID:         "a1",
			Name:       "getUsers",
			PluginType: "DB",
			DynamicBindingPathList: []domain.Property{
				{Key: "body"},
				{Key: "headers[0].value", Value: "x"},
			},
		},
	})
	require.NoError(t, err)

	keys := make([]string, 0, len(a.DynamicBindingPathList))
	for _, p := range a.DynamicBindingPathList {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"config.body", "config.headers[0].value"}, keys)
	assert.NotContains(t, keys, "body")
	assert.Equal(t, "x", a.DynamicBindingPathList[1].Value)
}

func TestAction_EmptyBindingListIsNeverNil(t *testing.T) {
	b := New(testRegistry())

	a, err := b.Action(domain.ActionRecord{
		Config: domain.ActionConfig{ID: "a1", Name: "q1", PluginType: "API"},
	})
	require.NoError(t, err)
	assert.NotNil(t, a.DynamicBindingPathList)
	assert.Empty(t, a.DynamicBindingPathList)
	assert.NotNil(t, a.Config)
}

func TestAction_Data(t *testing.T) {
	b := New(testRegistry())
	cfg := domain.ActionConfig{ID: "a1", Name: "q1", PluginType: "API"}

	t.Run("No Response", func(t *testing.T) {
		a, err := b.Action(domain.ActionRecord{Config: cfg})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, a.Data)
	})

	t.Run("Response Without Body", func(t *testing.T) {
		a, err := b.Action(domain.ActionRecord{Config: cfg, Data: &domain.ActionResponse{StatusCode: "204"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, a.Data)
	})

	t.Run("Body Only", func(t *testing.T) {
		a, err := b.Action(domain.ActionRecord{Config: cfg, Data: &domain.ActionResponse{
			Body:       []any{1, 2},
			Headers:    map[string]any{"x": "y"},
			StatusCode: "200",
		}})
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2}, a.Data)
	})
}

func TestAction_Validation(t *testing.T) {
	b := New(testRegistry())

	tests := []struct {
		name   string
		cfg    domain.ActionConfig
		reason string
	}{
		{"Missing Name", domain.ActionConfig{ID: "a1", PluginType: "API"}, "missing name"},
		{"Missing ID", domain.ActionConfig{Name: "q1", PluginType: "API"}, "missing id"},
		{"Missing Plugin Type", domain.ActionConfig{ID: "a1", Name: "q1"}, "missing pluginType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Action(domain.ActionRecord{Config: tt.cfg})
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.reason, vErr.Reason)
			assert.Equal(t, domain.KindAction, vErr.Kind)
		})
	}

	t.Run("Cyclic Body", func(t *testing.T) {
		body := map[string]any{}
		body["self"] = body
		_, err := b.Action(domain.ActionRecord{
			Config: domain.ActionConfig{ID: "a1", Name: "q1", PluginType: "API"},
			Data:   &domain.ActionResponse{Body: body},
		})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.ErrorIs(t, err, errCyclicValue)
	})
}

func TestAction_RunDispatcher(t *testing.T) {
	rec := domain.ActionRecord{Config: domain.ActionConfig{ID: "a1", Name: "q1", PluginType: "API"}}

	a, err := New(testRegistry()).Action(rec)
	require.NoError(t, err)
	assert.Nil(t, a.Run, "dispatchers are off by default")

	a, err = New(testRegistry(), WithRunDispatchers(true)).Action(rec)
	require.NoError(t, err)
	require.NotNil(t, a.Run)

	desc, err := a.Run.Describe("", "", "{}")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRunAction, desc.Type)
	assert.Equal(t, "a1", desc.Payload.(domain.RunActionPayload).ActionID)
}
