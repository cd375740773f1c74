// Package state holds the player-facing state shared by the theme core.
//
// # Overview
//
// Two kinds of state live here:
//
//   - Theme: the ThemeState snapshot owned by one coordinator. Every field
//     has a default (Defaults) and a distinct change event (EventOf). Writes
//     go through Set/Apply, which coerce and validate values and reject
//     unknown fields, so no component can invent a shared key.
//   - Store: a mutex-guarded inbox the player poller writes to from its own
//     goroutine and the UI loop reads from.
//
// # Data Flow
//
//	┌──────────────┐   Update(patch)   ┌─────────┐   Snapshot()   ┌─────────┐
//	│ player poller│ ────────────────> │  Store  │ ─────────────> │ UI loop │
//	└──────────────┘                   └─────────┘                └────┬────┘
//	                                                                   │
//	                                    ApplyPlayerState(patch)        │
//	                                  ┌────────────────────────────────┘
//	                                  v
//	                           ┌─────────────┐  one event per changed field
//	                           │ coordinator │ ───────────────────────────> controls
//	                           └─────────────┘
//
// # Wire format
//
// Player documents are JSON objects keyed by field name (DecodePatch):
//
//	{"playing": true, "volume": 0.4, "videoLevelList": [{"level": 1, "name": "HD"}]}
//
// Numeric values are coerced to the field type; a fractional number for an
// integer field, a volume outside [0,1], a non-positive speed, a zoom below 1
// or an orientation other than 0/90/180/270 is rejected.
package state
