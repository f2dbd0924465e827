package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventEntityBuilt EventType = "entity_built"
	EventCollision   EventType = "collision"
	EventTreeBuilt   EventType = "tree_built"
	EventBuildError  EventType = "build_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// EntityEvent is emitted once per entity inserted into the tree.
type EntityEvent struct {
	EventBase
	Name string     `json:"name"`
	Kind EntityKind `json:"kind"`
}

// TreeEvent is emitted when a build completes.
type TreeEvent struct {
	EventBase
	Actions  int           `json:"actions"`
	Widgets  int           `json:"widgets"`
	Entities int           `json:"entities"`
	Duration time.Duration `json:"duration"`
}

// BuildErrorEvent is emitted when a build is aborted.
type BuildErrorEvent struct {
	EventBase
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for build observability.
// Builds are synchronous, so hooks run on the caller's goroutine.
type LifecycleHooks struct {
	OnEntityBuilt func(*EntityEvent)
	OnCollision   func(*CollisionWarning)
	OnTreeBuilt   func(*TreeEvent)
	OnBuildError  func(*BuildErrorEvent)
}
