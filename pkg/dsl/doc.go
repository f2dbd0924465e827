/*
Package dsl provides a fluent Go API for constructing page seeds.

It is an alternative to JSON or YAML seed files, mostly useful in tests and
when seeds are generated programmatically.

Example usage:

	seed := dsl.New().
		Action("getUsers").ID("a1").Plugin("API").
		Config("url", "/users?page={{Table1.pageNo}}").Bind("url").
		Respond([]any{map[string]any{"id": 1}}).
		Widget("w1", "Table1", "TABLE_WIDGET").
		Bind("tableData", "{{getUsers.data}}").
		Meta("selectedRowIndex", 0).
		Seed()

	tree, err := datatree.New().Create(seed)
*/
package dsl
