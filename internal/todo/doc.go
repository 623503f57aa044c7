// Package todo holds the task list, its write-through store and the
// persisted-state codec.
//
// The list is persisted under a single key as a JSON array:
//
//	[
//	  {"id": 1718000000000, "text": "buy milk", "completed": false},
//	  {"id": 1718000000001, "text": "walk dog", "completed": true}
//	]
//
// # Store
//
// Store owns the in-memory List and writes the whole array back to its
// Backend after every mutation (add, toggle, delete, select all, delete all),
// so the persisted slot always matches memory once an operation returns.
//
// # Restore
//
// Restore validates the payload against the embedded JSON Schema (Schema)
// and rejects duplicate ids. Anything malformed leaves the list empty, is
// copied to "<key>.corrupt" and is reported as a *LoadError that callers
// treat as a warning.
//
// # Ids
//
// Ids are Unix milliseconds at creation, bumped past the last issued id when
// two tasks land in the same millisecond.
package todo
