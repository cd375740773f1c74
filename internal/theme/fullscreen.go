package theme

import (
	"github.com/five82/vista/internal/control"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/fullscreen"
	"github.com/five82/vista/internal/state"
	"github.com/five82/vista/internal/timers"
)

// Fullscreen requests fullscreen for the container.
func (c *Coordinator) Fullscreen() error {
	if c.inert() {
		return c.misuse("fullscreen")
	}
	c.fs.Enter(c.opts.Node)
	return nil
}

// ExitFullscreen leaves any fullscreen mode.
func (c *Coordinator) ExitFullscreen() error {
	if c.inert() {
		return c.misuse("exitFullscreen")
	}
	c.fs.Exit()
	return nil
}

// ToggleFullscreen toggles fullscreen.
func (c *Coordinator) ToggleFullscreen() error {
	if c.inert() {
		return c.misuse("toggleFullscreen")
	}
	c.fs.Toggle(c.opts.Node)
	return nil
}

// WebFullscreen fills the window without native fullscreen.
func (c *Coordinator) WebFullscreen() error {
	if c.inert() {
		return c.misuse("webFullscreen")
	}
	c.fs.EnterSimulated(c.opts.Node)
	return nil
}

// ToggleWebFullscreen toggles simulated fullscreen.
func (c *Coordinator) ToggleWebFullscreen() error {
	if c.inert() {
		return c.misuse("toggleWebFullscreen")
	}
	c.fs.ToggleSimulated(c.opts.Node)
	return nil
}

// FullscreenState returns the fullscreen machine state.
func (c *Coordinator) FullscreenState() fullscreen.State { return c.fs.State() }

// SetOrientation reports a device orientation of 0, 90, 180 or 270
// degrees. Desktop coordinators ignore it.
func (c *Coordinator) SetOrientation(angle int) error {
	if c.inert() {
		return c.misuse("setOrientation")
	}
	return c.fs.SetOrientation(angle)
}

// onFullscreen applies a settled fullscreen transition.
func (c *Coordinator) onFullscreen(change events.Fullscreen) {
	if c.inert() {
		return
	}
	c.state.IsCurrentFullscreen = change.IsCurrentFullscreen
	st := c.fs.State()
	if web, ok := c.Control(control.IconWebExpend); ok {
		web.SetActive(change.IsCurrentFullscreen && st.Mode == fullscreen.ModeSimulated)
	}
	mode := string(st.Mode)
	if mode == "" {
		mode = "none"
	}
	c.rec.IncFullscreenTransition(mode, change.IsCurrentFullscreen)

	if err := c.syncSize(); err != nil {
		c.logger.Warn("size sync failed", "error", err)
	}
	c.rotateControls()
	c.timers.Cancel(timers.KeyResize)
	c.relayout()
	c.emit(events.FullscreenChange, change)
}

// onOrientation applies an accepted orientation change. Fullscreen state is
// untouched; the bars re-flow once the orientation settles.
func (c *Coordinator) onOrientation(angle int) {
	if c.inert() {
		return
	}
	if _, err := c.state.Set(state.FieldOrientationAngle, angle); err != nil {
		c.logger.Warn("orientation rejected", "angle", angle, "error", err)
		return
	}
	c.rotateControls()
	c.emit(events.OrientationChange, events.Orientation{Angle: angle})
	c.timers.After(timers.KeyOrientation, c.opts.ResizeDebounce, c.relayout)
}
