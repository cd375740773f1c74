package control

import (
	"log/slog"

	"github.com/five82/vista/internal/eventbus"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/state"
)

// Lifecycle is the state holder every concrete control embeds.
type Lifecycle struct {
	iconID string
	opts   Options
	bus    *eventbus.Bus
	logger *slog.Logger

	bar       string
	region    string
	mounted   bool
	disabled  bool
	active    bool
	hidden    bool
	destroyed bool
	rotation  int

	subs eventbus.Group
}

func newLifecycle(iconID string, deps Deps, opts Options) *Lifecycle {
	logger := deps.logger().With("control", iconID)
	busOpts := append([]eventbus.Option{eventbus.WithLogger(logger)}, deps.BusOptions...)
	return &Lifecycle{
		iconID: iconID,
		opts:   opts,
		bus:    eventbus.New("control:"+iconID, busOpts...),
		logger: logger,
	}
}

func (l *Lifecycle) IconID() string     { return l.iconID }
func (l *Lifecycle) Bus() *eventbus.Bus { return l.bus }
func (l *Lifecycle) Options() Options   { return l.opts }
func (l *Lifecycle) Mounted() bool      { return l.mounted }
func (l *Lifecycle) Destroyed() bool    { return l.destroyed }
func (l *Lifecycle) Disabled() bool     { return l.disabled }
func (l *Lifecycle) Active() bool       { return l.active }
func (l *Lifecycle) Hidden() bool       { return l.hidden }
func (l *Lifecycle) Rotation() int      { return l.rotation }

// Placement returns the bar and region the control is mounted in.
func (l *Lifecycle) Placement() (bar, region string) {
	return l.bar, l.region
}

// Mount attaches the control to a bar region. Mounting an already mounted
// control unmounts the previous attachment first.
func (l *Lifecycle) Mount(bar, region string) {
	if l.destroyed {
		return
	}
	if l.mounted {
		l.Unmount()
	}
	l.bar, l.region, l.mounted = bar, region, true
	l.bus.Emit(events.ControlMount, events.ControlLifecycle{IconID: l.iconID, Bar: bar, Region: region})
}

// Unmount detaches the control. It is a no-op when not mounted.
func (l *Lifecycle) Unmount() {
	if !l.mounted {
		return
	}
	payload := events.ControlLifecycle{IconID: l.iconID, Bar: l.bar, Region: l.region}
	l.bar, l.region, l.mounted = "", "", false
	l.bus.Emit(events.ControlUnmount, payload)
}

func (l *Lifecycle) SetDisabled(v bool) { l.disabled = v }
func (l *Lifecycle) SetActive(v bool)   { l.active = v }
func (l *Lifecycle) SetHidden(v bool)   { l.hidden = v }

// SetRotation records the container rotation so hit-testing can map
// coordinates back onto the control's own axis.
func (l *Lifecycle) SetRotation(angle int) {
	l.rotation = ((angle % 360) + 360) % 360
}

// Act emits a Control.action event on the control bus.
func (l *Lifecycle) Act(name string, value any) {
	if l.destroyed {
		return
	}
	if l.disabled {
		l.logger.Debug("action ignored on disabled control", "action", name)
		return
	}
	l.bus.Emit(events.ControlAction, events.Action{IconID: l.iconID, Name: name, Value: value})
}

// Destroy unmounts, drops every subscription the control registered and
// emits Control.destroy plus the control's own <iconId>Destroy event. A
// second call does nothing.
func (l *Lifecycle) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	l.Unmount()
	l.subs.Release()
	payload := events.ControlLifecycle{IconID: l.iconID}
	l.bus.Emit(events.ControlDestroy, payload)
	l.bus.Emit(events.DestroyOf(l.iconID), payload)
	l.bus.Close()
}

// watch subscribes update to the theme-bus events of fields.
func (l *Lifecycle) watch(themeBus *eventbus.Bus, update func(state.Patch), fields ...state.Field) {
	if themeBus == nil {
		return
	}
	for _, f := range fields {
		ev, ok := state.EventOf(f)
		if !ok {
			continue
		}
		l.subs.On(themeBus, ev, func(payload any) {
			update(state.Patch{f: fieldValue(f, payload)})
		})
	}
}

// fieldValue unwraps the structured payloads that share an event name with
// a ThemeState field.
func fieldValue(f state.Field, payload any) any {
	switch p := payload.(type) {
	case events.Fullscreen:
		if f == state.FieldIsCurrentFullscreen {
			return p.IsCurrentFullscreen
		}
	case events.Orientation:
		if f == state.FieldOrientationAngle {
			return p.Angle
		}
	}
	return payload
}
