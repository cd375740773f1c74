// Package control implements the interactive units hosted by the header and
// footer bars.
//
// A control is composed from a Lifecycle (mount state, disabled/active/hidden
// flags, rotation, its own event bus and its subscriptions) plus a kind that
// knows which ThemeState fields it renders and which actions it offers.
// Controls never write shared state. User interaction becomes a
// Control.action event on the control's bus; the coordinator listens on
// every control bus and performs the mutation.
//
//	theme bus ──(field events)──▶ control.Update ──▶ Text()
//	control.Act ──▶ control bus (Control.action) ──▶ coordinator
//
// Controls are built through New, which parses the option bag into Options
// and fails fast on anything a mounted control could not honor.
package control
