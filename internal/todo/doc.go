// Package todo owns the task list and its write-through persistence.
//
// A Manager holds the ordered items together with the transient editing
// state (edit panel, active drag, pending new-item text) and the theme
// flag. Every change to the items or the theme is saved synchronously to a
// key-value Store under two keys:
//
//	todoItems  [{"id": 1, "text": "Buy milk", "done": false}, ...]
//	theme      true | false
//
// # Loading
//
// Load reads both keys once. A missing, unparsable or schema-invalid item
// list is reported internally as ErrPersistedDataUnreadable and replaced by
// the four seed items; an empty list is treated the same way. A missing or
// malformed theme falls back to the configured default (light).
//
// # Validation
//
// The stored item list is checked in two steps:
//
// 1. JSON Schema validation (draft 2020-12, schema embedded in the binary):
//   - array of objects with an integer id, a string text and a boolean done
//
// 2. Structural checks the schema cannot express:
//   - ids are unique within the list
//
// # Reordering
//
// Reordering follows a two-phase drag: StartDrag records the dragged item,
// Drop (or Reorder) moves it immediately before the target item and
// consumes the drag. Items between the two positions shift by one slot.
//
// A Manager is not safe for concurrent use; callers deliver one intent at a
// time.
package todo
