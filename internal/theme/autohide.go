package theme

import (
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/timers"
)

// BarsVisible reports whether the header and footer are shown.
func (c *Coordinator) BarsVisible() bool { return c.barsVisible }

// Interact records user activity: hidden bars come back and the auto-hide
// timer restarts.
func (c *Coordinator) Interact() {
	if c.inert() {
		return
	}
	if !c.barsVisible {
		c.barsVisible = true
		c.emit(events.ThemeBarsVisibleChange, true)
	}
	c.armAutoHide()
}

func (c *Coordinator) armAutoHide() {
	if c.opts.AutoHide <= 0 {
		return
	}
	c.timers.After(timers.KeyAutoHide, c.opts.AutoHide, c.hideBars)
}

func (c *Coordinator) hideBars() {
	if c.inert() || !c.barsVisible {
		return
	}
	if c.moreOpen {
		c.armAutoHide()
		return
	}
	c.barsVisible = false
	c.emit(events.ThemeBarsVisibleChange, false)
}
