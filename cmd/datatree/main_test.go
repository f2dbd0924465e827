package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageSeed = `
actions:
  - config:
      id: a1
      name: getUsers
      pluginType: API
      actionConfiguration:
        url: /users
      dynamicBindingPathList:
        - key: url
    data:
      body:
        - id: 1
          name: Ada
widgets:
  w1:
    widgetName: Table1
    type: TABLE_WIDGET
    tableData: "{{getUsers.data}}"
    dynamicBindings:
      tableData: true
pageList:
  - pageId: p1
    pageName: Page1
appData:
  mode: EDIT
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuildCommand(t *testing.T) {
	path := writeSeed(t, pageSeed)

	out, err := execute(t, "build", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"ENTITY_TYPE":"ACTION"`)
	assert.Contains(t, out, `"key":"config.url"`)
	assert.Contains(t, out, `"selectedRow":"{{Table1.selectedRowIndex === -1`)

	out, err = execute(t, "build", path, "--path", "getUsers.data[0].name")
	require.NoError(t, err)
	assert.Equal(t, `"Ada"`, strings.TrimSpace(out))

	_, err = execute(t, "build", path, "--path", "Nope")
	assert.ErrorContains(t, err, "path not found")
}

func TestBuildCommand_Pretty(t *testing.T) {
	out, err := execute(t, "build", writeSeed(t, pageSeed), "--path", "appsmith", "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"mode\": \"EDIT\"")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", writeSeed(t, pageSeed))
	require.NoError(t, err)
	assert.Contains(t, out, "Seed is valid!")

	bad := strings.Replace(pageSeed, "widgetName: Table1", "widgetName: getUsers", 1)
	_, err = execute(t, "validate", writeSeed(t, bad))
	assert.ErrorContains(t, err, "validation failed")
	assert.ErrorContains(t, err, `name collision on "getUsers"`)
}

func TestValidateCommand_SelfReferenceWarning(t *testing.T) {
	seedWithSelf := strings.Replace(pageSeed,
		`tableData: "{{getUsers.data}}"`,
		`tableData: "{{this.isVisible ? getUsers.data : []}}"`, 1)

	out, err := execute(t, "validate", writeSeed(t, seedWithSelf))
	require.NoError(t, err)
	assert.Contains(t, out, `Table1.tableData: 1 unresolved "this" reference(s)`)
	assert.Contains(t, out, "Seed is valid!")

	out, err = execute(t, "validate", writeSeed(t, pageSeed))
	require.NoError(t, err)
	assert.NotContains(t, out, "unresolved")
}

func TestBuildCommand_StrictFlag(t *testing.T) {
	bad := strings.Replace(pageSeed, "widgetName: Table1", "widgetName: getUsers", 1)
	path := writeSeed(t, bad)

	_, err := execute(t, "build", path)
	require.NoError(t, err)

	_, err = execute(t, "build", path, "--strict")
	assert.ErrorContains(t, err, "build failed")
}

func TestRegistryCommand(t *testing.T) {
	out, err := execute(t, "registry")
	require.NoError(t, err)
	assert.Contains(t, out, "TABLE_WIDGET\tselectedRow")
	assert.Contains(t, out, "TEXT_WIDGET\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "datatree version "))
}
