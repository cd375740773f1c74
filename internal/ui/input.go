package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
)

// handleKey maps a key to a control action or a coordinator call. Every key
// counts as interaction for auto-hide.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := m.coord
	if c.Destroyed() {
		if key.Matches(msg, m.keys.Quit) {
			return tea.Quit
		}
		return nil
	}
	c.Interact()

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.CyclePalette):
		m.cyclePalette()
	case key.Matches(msg, k.Escape):
		m.escape()

	case key.Matches(msg, k.Play):
		m.trigger(control.IconPlay, "", nil)
	case key.Matches(msg, k.Mute):
		m.trigger(control.IconSound, "mute", nil)
	case key.Matches(msg, k.VolumeUp):
		m.trigger(control.IconSound, "up", nil)
	case key.Matches(msg, k.VolumeDown):
		m.trigger(control.IconSound, "down", nil)
	case key.Matches(msg, k.Speed):
		m.trigger(control.IconSpeed, "next", nil)
	case key.Matches(msg, k.Definition):
		m.trigger(control.IconDefinition, "next", nil)

	case key.Matches(msg, k.Zoom):
		m.trigger(control.IconZoom, "toggle", nil)
	case key.Matches(msg, k.ZoomIn):
		m.trigger(control.IconZoom, "in", nil)
	case key.Matches(msg, k.ZoomOut):
		m.trigger(control.IconZoom, "out", nil)
	case key.Matches(msg, k.Capture):
		m.trigger(control.IconCapturePicture, "", nil)
	case key.Matches(msg, k.Record):
		m.trigger(control.IconRecordVideo, "", nil)
	case key.Matches(msg, k.Talk):
		m.trigger(control.IconTalk, "", nil)
	case key.Matches(msg, k.PTZ):
		m.trigger(control.IconPTZ, "toggle", nil)
	case key.Matches(msg, k.RecSource):
		m.cycleRecSource()
	case key.Matches(msg, k.PrevMonth):
		m.trigger(control.IconDatePicker, "prev", nil)
	case key.Matches(msg, k.NextMonth):
		m.trigger(control.IconDatePicker, "next", nil)

	case key.Matches(msg, k.More):
		m.report("toggleMore", c.ToggleMore())
	case key.Matches(msg, k.Fullscreen):
		m.report("toggleFullscreen", c.ToggleFullscreen())
	case key.Matches(msg, k.WebFullscreen):
		m.report("toggleWebFullscreen", c.ToggleWebFullscreen())
	case key.Matches(msg, k.Rotate):
		m.report("setOrientation", c.SetOrientation((c.OrientationAngle()+90)%360))
	case key.Matches(msg, k.ScaleMode):
		m.report("setScaleMode", c.SetScaleMode((c.ScaleMode()+1)%3))

	case key.Matches(msg, k.Left, k.Right, k.Up, k.Down):
		m.arrow(msg)
	}
	return nil
}

// trigger acts on a control. Keys for controls the template lacks do
// nothing.
func (m *Model) trigger(iconID, action string, value any) {
	err := m.coord.Trigger(iconID, action, value)
	if errors.Is(err, verrors.ErrUnknownControl) {
		m.logger.Debug("no such control", "control", iconID, "action", action)
		return
	}
	m.report("trigger", err)
}

// escape leaves the alternate screen, then any fullscreen, then closes the
// More panel and the PTZ panel.
func (m *Model) escape() {
	c := m.coord
	switch {
	case m.screen.leave():
	case c.IsCurrentFullscreen():
		m.report("exitFullscreen", c.ExitFullscreen())
	case c.MoreOpen():
		m.report("toggleMore", c.ToggleMore())
	case m.ptzOpen():
		m.trigger(control.IconPTZ, "toggle", nil)
	}
}

func (m *Model) ptzOpen() bool {
	ctl, ok := m.coord.Control(control.IconPTZ)
	if !ok {
		return false
	}
	p, ok := ctl.(*control.Panel)
	return ok && p.Open()
}

// arrow steers the PTZ panel while it is open. Otherwise left and right
// seek and up and down change the volume.
func (m *Model) arrow(msg tea.KeyMsg) {
	k := m.keys
	dir := "right"
	switch {
	case key.Matches(msg, k.Left):
		dir = "left"
	case key.Matches(msg, k.Up):
		dir = "up"
	case key.Matches(msg, k.Down):
		dir = "down"
	}
	if m.ptzOpen() {
		m.trigger(control.IconPTZ, dir, nil)
		return
	}
	switch dir {
	case "up":
		m.trigger(control.IconSound, "up", nil)
	case "down":
		m.trigger(control.IconSound, "down", nil)
	default:
		action := "forward"
		if dir == "left" {
			action = "back"
		}
		m.trigger(m.track(), action, nil)
	}
}

// track is the seekable control of the current template.
func (m *Model) track() string {
	if _, ok := m.coord.Control(control.IconTimeLine); ok {
		return control.IconTimeLine
	}
	return control.IconProgress
}

var recSources = []string{control.IconRec, control.IconCloudRec, control.IconCloudRecord}

// cycleRecSource selects the next record source present in the template.
func (m *Model) cycleRecSource() {
	var present []string
	for _, id := range recSources {
		if _, ok := m.coord.Control(id); ok {
			present = append(present, id)
		}
	}
	if len(present) == 0 {
		return
	}
	next := present[0]
	current := m.coord.RecType()
	for i, id := range present {
		if id == current {
			next = present[(i+1)%len(present)]
			break
		}
	}
	m.trigger(next, "select", nil)
}

// handleMouse runs the primary action of the clicked control. A click on a
// range seeks to the clicked position. Coordinates are only meaningful on
// the alternate screen; inline frames scroll with the terminal.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.screen.Active() == "" || m.coord.Destroyed() {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	m.coord.Interact()
	z, ok := m.frame().hit(msg.X, msg.Y)
	if !ok {
		return
	}
	if r, isRange := z.ctl.(*control.Range); isRange {
		x, y, w, h := trackPoint(r.Rotation(), msg.X-z.x0, z.x1-z.x0)
		if v, hit := r.HitTest(x, y, w, h); hit {
			m.trigger(r.IconID(), "seek", v)
		}
		return
	}
	if z.ctl.IconID() == control.IconMore {
		m.report("toggleMore", m.coord.ToggleMore())
		return
	}
	m.trigger(z.ctl.IconID(), "", nil)
}

// trackPoint converts a position along an unrotated drawn track into the
// rotated box HitTest expects. The terminal cannot rotate glyphs, so the
// frame is always drawn unrotated.
func trackPoint(rotation, pos, span int) (x, y, w, h int) {
	switch rotation {
	case 90:
		return 0, pos, 1, span
	case 180:
		return span - 1 - pos, 0, span, 1
	case 270:
		return 0, span - 1 - pos, 1, span
	default:
		return pos, 0, span, 1
	}
}
