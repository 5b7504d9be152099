// Package state provides thread-safe state management for the Marquee client.
//
// # Overview
//
// This package implements the action/reducer pipeline that mediates between
// the Habitat HTTP API and the UI. Remote operations never mutate state
// directly: they emit request/success/failure events, and pure reducers fold
// those events into per-slice state records that the UI renders.
//
// # Architecture
//
// The package follows a dispatch-reduce pattern:
//
//	Producer (dispatch layer):        Consumer (UI / CLI):
//	┌──────────────────────┐         ┌──────────────────────┐
//	│ emit request event   │         │                      │
//	│ perform HTTP call    │         │                      │
//	│ emit success/failure │────────→│ store.Snapshot()     │
//	│                      │ (mutex) │ render slices        │
//	└──────────────────────┘         └──────────────────────┘
//
// # Core Types
//
// Event:
//   - A typed occurrence plus an optional payload
//   - One request/success/failure triple exists per remote operation
//
// Reducers:
//   - Pure, total functions (slice, event) → slice
//   - Unrecognized events return the input unchanged
//   - Never panic; defensive about payload shapes
//
// Store:
//   - Mutex-guarded container for every slice
//   - Constructed explicitly at application start and injected; there is
//     no ambient module-level store
//   - Dispatch applies every slice reducer in sequence under the write lock
//
// # Slice Semantics
//
// Fetch slices keep previously loaded data while a new request is in flight
// and when a request fails (stale-while-revalidate). Entering the pending
// state clears the slice's stale error. A success replaces the data with the
// fresh payload, defaulting to an empty collection when the payload is not
// collection-shaped. Clear-error events touch only the error field.
//
// Mutation slices additionally track a Done flag that is reset whenever a
// new mutation of that kind begins.
//
// The session slice holds the bearer credential and the profile derived from
// it; Authenticated is true exactly when a credential is held.
//
// # Concurrency Model
//
// A single writer (whichever goroutine runs a dispatcher method) and any
// number of snapshot readers. Reducer application itself is synchronous and
// cheap; the lock is never held across network I/O.
package state
