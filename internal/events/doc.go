// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose coupling
// between components in the system. Services can emit events without knowing which
// handlers will process them, enabling better separation of concerns and reducing
// circular dependencies.
//
// Two kinds of events flow through the emitter: change events carrying fresh
// snapshots of the lesson or question collections (the subscribable live view
// the display layer consumes), and the lesson-added event that requests a
// background notification dispatch.
package events
