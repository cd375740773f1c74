// Package player reads the external player's state.
//
// Two sources are available. Client polls GET /api/state on the player's
// HTTP API and File reads the last line of a JSON-lines file the player
// appends to. Both decode into a state.Patch, so unknown fields are
// rejected before they reach the coordinator.
//
// Neither source caches or retries; the app poller owns cadence and backoff.
package player
