// Package metrics instruments the control-orchestration core.
package metrics

import "github.com/five82/vista/internal/events"

// Recorder receives core instrumentation. The coordinator calls it from its
// own loop; implementations must not block.
type Recorder interface {
	IncEvent(bus string, event events.Name, handlers int)
	IncHandlerPanic(bus string, event events.Name)
	ObserveOverflow(bar string, visible, overflowed int)
	IncFullscreenTransition(mode string, fullscreen bool)
	IncFullscreenError()
	IncTemplateChange(name string)
	IncTimerFired(key string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) IncEvent(string, events.Name, int)    {}
func (NoopRecorder) IncHandlerPanic(string, events.Name)  {}
func (NoopRecorder) ObserveOverflow(string, int, int)     {}
func (NoopRecorder) IncFullscreenTransition(string, bool) {}
func (NoopRecorder) IncFullscreenError()                  {}
func (NoopRecorder) IncTemplateChange(string)             {}
func (NoopRecorder) IncTimerFired(string)                 {}
