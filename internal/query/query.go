package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/tidwall/gjson"
)

// ErrPathNotFound is returned when a path does not resolve against the tree.
var ErrPathNotFound = errors.New("path not found")

// Get resolves a path such as "Table1.tableData[0].id" against the wire form of the tree.
func Get(tree domain.Tree, path string) (gjson.Result, error) {
	raw, err := tree.Encode()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode tree: %w", err)
	}
	return GetJSON(raw, path)
}

// GetJSON resolves a path against an already encoded tree.
func GetJSON(raw []byte, path string) (gjson.Result, error) {
	if path == "" {
		return gjson.ParseBytes(raw), nil
	}

	// gjson addresses array items as path segments, not brackets.
	formatted := strings.ReplaceAll(path, "[", ".")
	formatted = strings.ReplaceAll(formatted, "]", "")

	result := gjson.GetBytes(raw, formatted)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return result, nil
}
