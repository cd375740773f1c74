package theme

import (
	"github.com/five82/vista/internal/control"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/state"
)

// onAction turns a control interaction into a state mutation or command,
// then forwards the action on the coordinator bus for integrators.
func (c *Coordinator) onAction(payload any) {
	a, ok := payload.(events.Action)
	if !ok || c.inert() {
		return
	}
	c.Interact()

	var err error
	st := c.state
	switch a.IconID {
	case control.IconPlay:
		err = c.apply(state.Patch{state.FieldPlaying: !st.Playing})
	case control.IconSound:
		if a.Name == "mute" {
			err = c.apply(state.Patch{state.FieldMuted: !st.Muted})
		} else if a.Value != nil {
			err = c.apply(state.Patch{state.FieldVolume: a.Value, state.FieldMuted: false})
		}
	case control.IconZoom:
		switch {
		case a.Name == "toggle" && st.Zooming:
			err = c.apply(state.Patch{state.FieldZooming: false, state.FieldZoom: 1.0})
		case a.Name == "toggle":
			err = c.apply(state.Patch{state.FieldZooming: true})
		case a.Value != nil:
			err = c.apply(state.Patch{state.FieldZooming: true, state.FieldZoom: a.Value})
		}
	case control.IconRecordVideo:
		err = c.apply(state.Patch{state.FieldRecording: !st.Recording})
	case control.IconTalk:
		err = c.apply(state.Patch{state.FieldTalking: !st.Talking})
	case control.IconDefinition:
		err = c.apply(state.Patch{state.FieldVideoLevel: a.Value})
	case control.IconSpeed:
		err = c.apply(state.Patch{state.FieldSpeed: a.Value})
	case control.IconRec, control.IconCloudRec, control.IconCloudRecord:
		err = c.apply(state.Patch{state.FieldRecType: a.Value})
	case control.IconDatePicker:
		err = c.apply(state.Patch{state.FieldRecMonth: a.Value})
	case control.IconCapturePicture:
		c.emit(events.Capture, a)
	case control.IconProgress, control.IconTimeLine:
		if a.Value != nil {
			c.emit(events.Seek, a)
		}
	case control.IconExpend:
		c.fs.Toggle(c.opts.Node)
	case control.IconWebExpend:
		c.fs.ToggleSimulated(c.opts.Node)
	case control.IconMore:
		err = c.ToggleMore()
	}
	if err != nil {
		c.logger.Warn("control action rejected", "control", a.IconID, "action", a.Name, "error", err)
		c.emit(events.ThemeError, events.Error{Err: err})
		return
	}
	if !c.inert() {
		c.emit(events.ControlAction, a)
	}
}
