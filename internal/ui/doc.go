// Package ui is the Bubble Tea front end of vista.
//
// The Model owns a theme.Coordinator and is the only caller into it: key
// presses, mouse clicks, window sizes, player snapshots and template reloads
// all arrive as tea messages and are applied on the program loop. Timer
// callbacks scheduled by the coordinator are posted back into the loop as
// callMsg values, so the coordinator never runs on a timer goroutine.
//
// # Rendering
//
// The container is drawn at the coordinator's layout size: the header bar,
// the video surface (poster, loading or offline text plus a status line),
// the More panel when open, the message toast and the footer bar. Bars show
// only the controls the overflow resolver left visible; the More trigger
// sits at the right end of a bar whenever something overflowed.
//
// # Fullscreen
//
// Native fullscreen is the terminal alternate screen (altScreen). Requests
// are queued as tea commands and complete when the program confirms the
// switch. Escape leaves the alternate screen the way a browser leaves
// fullscreen, which the fullscreen machine observes as a native change.
// Mobile and window fullscreen are simulated by the coordinator and never
// touch the terminal.
package ui
