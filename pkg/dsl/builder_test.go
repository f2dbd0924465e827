package dsl_test

import (
	"testing"

	"github.com/aretw0/datatree"
	"github.com/aretw0/datatree/pkg/dsl"
)

func TestBuilder_SimplePage(t *testing.T) {
	// 1. Describe the page using the DSL
	b := dsl.New()

	b.Action("getUsers").
		ID("a1").
		Plugin("API").
		Config("url", "/users?page={{Table1.pageNo}}").
		Bind("url").
		Respond([]any{map[string]any{"id": 1}}).
		Set("isLoading", false)

	b.Widget("w1", "Table1", "TABLE_WIDGET").
		Bind("tableData", "{{getUsers.data}}").
		Prop("label", "Users").
		Meta("selectedRowIndex", 0)

	b.Page("p1", "Page1", true).App("mode", "EDIT")

	seed := b.Build()

	// 2. Verify the seed
	if len(seed.Actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(seed.Actions))
	}
	a := seed.Actions[0]
	if a.Config.ID != "a1" || a.Config.Name != "getUsers" || a.Config.PluginType != "API" {
		t.Errorf("Unexpected action config: %+v", a.Config)
	}
	if len(a.Config.DynamicBindingPathList) != 1 || a.Config.DynamicBindingPathList[0].Key != "url" {
		t.Errorf("Expected url binding, got %v", a.Config.DynamicBindingPathList)
	}
	if a.Extra["isLoading"] != false {
		t.Errorf("Expected isLoading extra field, got %v", a.Extra)
	}

	w, ok := seed.Widgets["w1"]
	if !ok {
		t.Fatal("Widget w1 missing")
	}
	if !w.DynamicBindings["tableData"] {
		t.Error("Expected tableData to be bound")
	}
	if w.Properties["label"] != "Users" {
		t.Errorf("Expected label 'Users', got %v", w.Properties["label"])
	}
	if seed.WidgetsMeta["w1"]["selectedRowIndex"] != 0 {
		t.Errorf("Expected meta override, got %v", seed.WidgetsMeta["w1"])
	}
	if len(seed.PageList) != 1 || seed.AppData["mode"] != "EDIT" {
		t.Errorf("Unexpected page list or app data: %v %v", seed.PageList, seed.AppData)
	}

	// 3. The seed builds
	tree, err := datatree.New().Create(seed)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	table, ok := tree.Widget("Table1")
	if !ok {
		t.Fatal("Table1 missing from tree")
	}
	if table.Properties["selectedRowIndex"] != 0 {
		t.Errorf("Expected meta override to win, got %v", table.Properties["selectedRowIndex"])
	}
	action, _ := tree.Action("getUsers")
	if action.DynamicBindingPathList[0].Key != "config.url" {
		t.Errorf("Expected prefixed binding path, got %v", action.DynamicBindingPathList)
	}
}

func TestBuilder_FluentChaining(t *testing.T) {
	seed := dsl.New().
		Widget("w1", "Text1", "TEXT_WIDGET").Prop("text", "a").
		Widget("w2", "Input1", "INPUT_WIDGET").Bind("defaultText", "{{Text1.text}}").
		Action("q1").Plugin("DB").
		Action("q2").Plugin("DB").
		Seed()

	if len(seed.Widgets) != 2 {
		t.Fatalf("Expected 2 widgets, got %d", len(seed.Widgets))
	}
	if seed.Actions[0].Config.Name != "q1" || seed.Actions[1].Config.Name != "q2" {
		t.Errorf("Expected actions in insertion order, got %+v", seed.Actions)
	}
	if seed.Actions[0].Data != nil {
		t.Error("Expected no response for actions that never ran")
	}
}

func TestBuilder_SeedsAreIndependent(t *testing.T) {
	b := dsl.New()
	w := b.Widget("w1", "Text1", "TEXT_WIDGET").Prop("text", "first")

	first := b.Build()
	w.Prop("text", "second").Meta("isVisible", false)
	b.App("user", "ada")
	second := b.Build()

	if first.Widgets["w1"].Properties["text"] != "first" {
		t.Errorf("Earlier seed changed: %v", first.Widgets["w1"].Properties)
	}
	if _, ok := first.WidgetsMeta["w1"]; ok {
		t.Error("Earlier seed gained meta state")
	}
	if _, ok := first.AppData["user"]; ok {
		t.Error("Earlier seed gained app data")
	}
	if second.Widgets["w1"].Properties["text"] != "second" {
		t.Errorf("Expected updated property, got %v", second.Widgets["w1"].Properties)
	}

	// Same id returns the same builder.
	if b.Widget("w1", "Ignored", "IGNORED") != w {
		t.Error("Expected existing widget builder to be reused")
	}
}
