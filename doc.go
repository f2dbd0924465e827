/*
Package datatree builds the entity tree of a low-code application: the flat
namespace that bindings such as {{Table1.selectedRow}} or {{getUsers.data}}
are evaluated against.

It merges independently shaped state into one map keyed by entity name:
action results, widget instances with their transient (meta) state and
derived properties, the page list and the application state. Every entry is
tagged with its kind, so consumers switch on the tag instead of probing shape.

# Concept

A build is a single synchronous pass over a Seed. Actions get their
configuration moved under "config" and their binding paths rewritten to match.
Widgets are layered (instance, type defaults, meta override, derived
properties), with "this" in derived formulas replaced by the widget name.
The result is a fresh snapshot; nothing in it aliases the seed.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/datatree"
		"github.com/aretw0/datatree/pkg/seed"
	)

	func main() {
		s, err := seed.LoadFile("./page.json")
		if err != nil {
			log.Fatal(err)
		}

		tree, err := datatree.New().Create(s)
		if err != nil {
			log.Fatal(err)
		}

		for _, name := range tree.Names() {
			fmt.Println(name, tree[name].Kind())
		}
	}
*/
package datatree
