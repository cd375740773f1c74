// Package app is the composition root for vista.
//
// # Overview
//
// Run wires the resolved configuration, user preferences, the player feed,
// the template watcher and the optional metrics listener to the Bubble Tea
// UI, then blocks until the user quits or the context is cancelled.
//
// # Components
//
//   - app.go: Run plus template and player source selection
//   - poller.go: background goroutine feeding player snapshots into state.Store
//   - watcher.go: fsnotify watcher that reloads template_file
//   - metrics.go: Prometheus /metrics listener
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> prefs.Load()            palette, language override
//	       ├─────> selectTemplate()        template_file > template > device default
//	       ├─────> selectSource()          player_api > player_state_file > none
//	       ├─────> StartPoller()           Source.Fetch -> store.Update
//	       ├─────> TemplateWatcher.Start() file change -> Templates() channel
//	       ├─────> serveMetrics()          optional
//	       └─────> ui.Run()                blocks
//
// # Polling Behavior
//
// The poller fetches immediately, then every poll interval. Each
// consecutive failure doubles the wait, capped at 30 seconds; the first
// success resets it. The store keeps the last good patch across failures and
// reports offline after two of them, which the UI turns into a toast.
//
// # Error Handling
//
// Fatal (returned from Run): unknown named template, unreadable or invalid
// template file, bad player address, busy metrics port.
//
// Recoverable (logged): poll failures and template reload failures. A
// template that fails to load on reload is never published, so the UI keeps
// the controls it has.
package app
