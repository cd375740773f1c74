// Package theme is the coordinator that owns ThemeState and composes the
// header/footer bars, the overflow resolver, the fullscreen machine and the
// set of active controls.
//
// # Ownership
//
// The Coordinator is the only writer of ThemeState. Controls read state
// through field events on the coordinator bus and request mutations by
// emitting Control.action on their own bus; the coordinator subscribes to
// every control bus it created and turns actions into mutations. External
// callers mutate through the exported methods only.
//
//	template ──▶ ChangeTheme ──▶ bars + controls
//	player feed ──▶ ApplyPlayerState ──▶ ThemeState ──▶ <field event>
//	control.Act ──▶ Control.action ──▶ coordinator ──▶ ThemeState ──▶ <field event>
//	Resize/orientation ──▶ settle timer ──▶ relayout ──▶ Theme.overflowChange
//
// # Concurrency
//
// A Coordinator is confined to one loop. Timer callbacks are posted back to
// that loop through Options.Post, so every handler runs to completion
// before the next one starts. Destroy cancels every pending timer.
//
// # Errors
//
// Configuration errors are returned from the call that introduced them.
// Environment errors (fullscreen rejected or unsupported) are delivered as
// Theme.error events, through Options.OnError and as message toast text.
// Calls after Destroy log a warning and return an error wrapping
// errors.ErrDestroyed.
package theme
