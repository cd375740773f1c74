package control

import (
	"log/slog"
	"time"

	"github.com/five82/vista/internal/eventbus"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/state"
)

// Regions of a layout bar.
const (
	RegionLeft  = "left"
	RegionRight = "right"
)

// Padding is the horizontal cell padding a bar adds around each control.
const Padding = 2

// Size is a natural size in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Mountable attaches to a bar region.
type Mountable interface {
	Mount(bar, region string)
	Unmount()
	Mounted() bool
}

// Measurable reports its natural size.
type Measurable interface {
	Measure() Size
}

// Destroyable releases everything the control registered.
type Destroyable interface {
	Destroy()
	Destroyed() bool
}

// Control is the polymorphic unit a bar holds.
type Control interface {
	Mountable
	Measurable
	Destroyable

	IconID() string
	Bus() *eventbus.Bus
	Options() Options

	// Update merges the ThemeState fields this control renders. Other
	// fields are ignored.
	Update(p state.Patch)

	SetDisabled(bool)
	Disabled() bool
	SetActive(bool)
	Active() bool
	SetHidden(bool)
	Hidden() bool
	SetRotation(angle int)
	Rotation() int

	// Text is the current rendered label.
	Text() string
	// Actions lists the action names Act accepts, primary first.
	Actions() []string
	// Act emits a Control.action event unless the control is disabled or
	// destroyed.
	Act(name string, value any)
}

// Deps are the collaborators a control is built with.
type Deps struct {
	Translator i18n.Translator
	Lang       string
	// ThemeBus is the coordinator bus the control subscribes to. Nil leaves
	// the control driven only by Update.
	ThemeBus *eventbus.Bus
	// State returns the current ThemeState for initial rendering.
	State      func() state.Theme
	Now        func() time.Time
	Logger     *slog.Logger
	BusOptions []eventbus.Option
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Deps) text(key string) string {
	if d.Translator == nil {
		return i18n.Default().Text(key, d.Lang)
	}
	return d.Translator.Text(key, d.Lang)
}

func (d Deps) state() state.Theme {
	if d.State == nil {
		return state.Defaults()
	}
	return d.State()
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
