/*
Package ports defines the driven ports (interfaces) of the tree builder.

These interfaces decouple the core logic from external implementations, allowing
the builder to work with any component catalogue and any snapshot backend.

# Key Interfaces

  - ComponentRegistry: supplies default meta state and derived formulas per widget type.
  - SnapshotStore: persists and loads built trees (memory, Redis).
*/
package ports
