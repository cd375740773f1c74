package events

// Size is the payload of Resize.
type Size struct {
	Width  int
	Height int
}

// Fullscreen is the payload of FullscreenChange. It is emitted once per
// settled transition.
type Fullscreen struct {
	IsCurrentFullscreen bool
	IsFullscreen        bool
	IsMobile            bool
	Node                string
}

// Orientation is the payload of OrientationChange.
type Orientation struct {
	Angle int
}

// ControlLifecycle is the payload of ControlMount, ControlUnmount and
// ControlDestroy.
type ControlLifecycle struct {
	IconID string
	Bar    string
	Region string
}

// PanelOpen is the payload of ControlPanelOpenChange.
type PanelOpen struct {
	IconID string
	Open   bool
}

// Action is a user interaction on a control. The coordinator is the only
// consumer that turns actions into state mutations.
type Action struct {
	IconID string
	Name   string
	Value  any
}

// Overflow is the payload of ThemeOverflowChange.
type Overflow struct {
	Bar        string
	Visible    []string
	Overflowed []string
}

// Error is the payload of ThemeError.
type Error struct {
	Err error
}

// Message is the payload of ThemeMessage.
type Message struct {
	Text  string
	Level string
}
