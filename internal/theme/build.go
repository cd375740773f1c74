package theme

import (
	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/layout"
	"github.com/five82/vista/internal/templates"
	"github.com/five82/vista/internal/timers"
)

// ChangeTheme replaces every bar and control with those of d. The new
// template is fully validated first; on a configuration error the current
// controls stay untouched. The previous set is torn down before the first
// new control is mounted. A nil template clears the theme.
func (c *Coordinator) ChangeTheme(d *templates.Data) error {
	if c.inert() {
		return c.misuse("changeTheme")
	}
	if d == nil {
		c.teardown()
		c.template = nil
		c.rec.IncTemplateChange("none")
		c.emit(events.ThemeTemplateChange, "")
		return nil
	}

	resolved, err := d.Resolve()
	if err != nil {
		return err
	}
	if err := resolved.Validate(control.Known); err != nil {
		return err
	}
	for _, bar := range []templates.Bar{resolved.Header, resolved.Footer} {
		for _, it := range bar.Items {
			if err := control.Validate(it.IconID, it.Options); err != nil {
				return err
			}
		}
	}

	c.teardown()
	if err := c.build(layout.Header, resolved.Header, c.header); err != nil {
		c.teardown()
		return err
	}
	if err := c.build(layout.Footer, resolved.Footer, c.footer); err != nil {
		c.teardown()
		return err
	}
	c.template = resolved
	c.rotateControls()

	c.logger.Info("template applied", "template", resolved.Name,
		"header", c.header.Len(), "footer", c.footer.Len())
	c.rec.IncTemplateChange(resolved.Name)
	c.timers.Cancel(timers.KeyResize)
	c.relayout()
	c.emit(events.ThemeTemplateChange, resolved.Name)
	c.armAutoHide()
	return nil
}

func (c *Coordinator) build(name string, data templates.Bar, bar *layout.Bar) error {
	left, right := templates.Arrange(data.Items)
	deps := c.controlDeps()
	for _, region := range []struct {
		part  string
		items []templates.Item
	}{{control.RegionLeft, left}, {control.RegionRight, right}} {
		for _, it := range region.items {
			ctl, err := control.New(it.IconID, deps, it.Options)
			if err != nil {
				return err
			}
			c.watchControl(ctl)
			if err := bar.Add(ctl, region.part); err != nil {
				ctl.Destroy()
				return err
			}
		}
	}
	if bar.Len() == 0 {
		return nil
	}
	more, err := control.New(control.IconMore, deps, nil)
	if err != nil {
		return verrors.Config("changeTheme", err, "more trigger")
	}
	c.watchControl(more)
	more.Mount(name, control.RegionRight)
	more.SetHidden(true)
	c.more[name] = more
	return nil
}

// watchControl forwards a control's events to the coordinator.
func (c *Coordinator) watchControl(ctl control.Control) {
	c.subs.On(ctl.Bus(), events.ControlAction, c.onAction)
	for _, ev := range []events.Name{events.ControlMount, events.ControlUnmount, events.ControlPanelOpenChange} {
		c.subs.On(ctl.Bus(), ev, func(payload any) { c.emit(ev, payload) })
	}
	c.subs.On(ctl.Bus(), events.ControlDestroy, func(payload any) { c.emit(events.ControlDestroy, payload) })
}

// teardown destroys every control and bar content synchronously.
func (c *Coordinator) teardown() {
	for _, bar := range c.bars() {
		bar.Destroy()
	}
	for name, more := range c.more {
		more.Destroy()
		delete(c.more, name)
	}
	c.subs.Release()
	c.moreOpen = false
}

// rotateControls tells every control about the container rotation.
func (c *Coordinator) rotateControls() {
	r := c.fs.Rotation()
	for _, bar := range c.bars() {
		for _, ctl := range bar.Controls() {
			ctl.SetRotation(r)
		}
	}
	for _, more := range c.more {
		more.SetRotation(r)
	}
}

// MoreOpen reports whether the More panel is open.
func (c *Coordinator) MoreOpen() bool { return c.moreOpen }

// ToggleMore opens or closes the More panel. It only opens while some bar
// has overflowed controls.
func (c *Coordinator) ToggleMore() error {
	if c.inert() {
		return c.misuse("toggleMore")
	}
	if !c.moreOpen && len(c.Overflowed()) == 0 {
		return nil
	}
	c.setMoreOpen(!c.moreOpen)
	return nil
}

func (c *Coordinator) setMoreOpen(open bool) {
	if c.moreOpen == open {
		return
	}
	c.moreOpen = open
	for _, more := range c.more {
		more.SetActive(open)
	}
	c.emit(events.ControlPanelOpenChange, events.PanelOpen{IconID: control.IconMore, Open: open})
}

// Overflowed returns the overflowed controls of both bars, header first.
func (c *Coordinator) Overflowed() []control.Control {
	var out []control.Control
	for _, bar := range c.bars() {
		out = append(out, bar.Overflowed()...)
	}
	return out
}
