package query

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() domain.Tree {
	return domain.Tree{
		"Table1": &domain.Widget{
			WidgetID: "w1",
			Name:     "Table1",
			Type:     "TABLE_WIDGET",
			Properties: map[string]any{
				"widgetId":    "w1",
				"widgetName":  "Table1",
				"type":        "TABLE_WIDGET",
				"tableData":   []any{map[string]any{"id": json.Number("7"), "name": "Ada"}},
				"selectedRow": "{{Table1.tableData.length > 0 && Table1.selectedRowIndex !== -1}}",
			},
			DynamicBindings: map[string]bool{"selectedRow": true},
		},
		"getUsers": &domain.Action{
			ActionID:               "a1",
			Name:                   "getUsers",
			PluginType:             "API",
			Config:                 map[string]any{"url": "/users"},
			Data:                   map[string]any{},
			DynamicBindingPathList: []domain.Property{{Key: "config.url"}},
		},
		domain.KeyPageList: &domain.PageList{Pages: []any{}},
	}
}

func TestGet(t *testing.T) {
	tree := fixture()

	res, err := Get(tree, "Table1.tableData[0].name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.String())

	res, err = Get(tree, "Table1.tableData.0.id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Int())

	res, err = Get(tree, "getUsers.ENTITY_TYPE")
	require.NoError(t, err)
	assert.Equal(t, string(domain.KindAction), res.String())

	res, err = Get(tree, "getUsers.dynamicBindingPathList.0.key")
	require.NoError(t, err)
	assert.Equal(t, "config.url", res.String())
}

func TestGet_NoHTMLEscaping(t *testing.T) {
	res, err := Get(fixture(), "Table1.selectedRow")
	require.NoError(t, err)
	assert.Contains(t, res.Raw, "&&")
	assert.Contains(t, res.Raw, ">")
	assert.NotContains(t, res.Raw, `\u0026`)
}

func TestGet_EmptyPathReturnsWholeTree(t *testing.T) {
	res, err := Get(fixture(), "")
	require.NoError(t, err)
	assert.True(t, res.IsObject())
	assert.True(t, res.Get("pageList").IsArray())
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get(fixture(), "Table1.missing")
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.ErrorContains(t, err, "Table1.missing")
}
