/*
Package domain contains the core models of the entity tree.

It defines the seed records the builder consumes and the tagged entities it
produces. This package is kept free of I/O.

# Key Entities

  - Tree: the flat name -> Entity namespace handed to the expression evaluator.
  - Action, Widget, PageList, AppState: the closed set of Entity variants.
  - Seed: actions, widgets, per-widget meta state, page list and app data.
  - Capability: a pure producer of ActionDescription values.
*/
package domain
