// Package fullscreen tracks current-fullscreen, native fullscreen and
// device orientation for one coordinator.
//
// Native fullscreen goes through a Capability whose calls complete
// asynchronously. Mobile devices, and desktop "web" fullscreen, are
// simulated: the container takes the whole window without touching the
// capability. A Change is delivered once per settled transition.
//
// The Machine is not safe for concurrent use. Capability callbacks must be
// delivered on the owner's loop.
package fullscreen

import (
	"log/slog"

	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
)

// Capability is the native fullscreen shim.
type Capability interface {
	// Supported reports whether native fullscreen is available at all.
	Supported() bool
	// Request asks for node to become fullscreen; done reports the outcome.
	Request(node string, done func(error))
	// Exit leaves native fullscreen; done reports the outcome.
	Exit(done func(error))
	// Active returns the node currently fullscreen, or "".
	Active() string
	// OnChange subscribes to native fullscreen changes. The returned func
	// cancels the subscription.
	OnChange(fn func(active string)) (cancel func())
}

// Phase of the machine.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseEntering
	PhaseFullscreen
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseFullscreen:
		return "fullscreen"
	case PhaseExiting:
		return "exiting"
	default:
		return "normal"
	}
}

// Mode is how the current fullscreen is achieved.
type Mode string

const (
	ModeNone      Mode = ""
	ModeNative    Mode = "native"
	ModeSimulated Mode = "simulated"
)

// State is a read-only view of the machine.
type State struct {
	Phase  Phase
	Mode   Mode
	Node   string
	Mobile bool
	Angle  int
}

// IsCurrentFullscreen reports whether the container fills the window.
func (s State) IsCurrentFullscreen() bool { return s.Phase == PhaseFullscreen }

// Options configure a Machine.
type Options struct {
	Mobile     bool
	Capability Capability
	// OnChange receives every settled transition.
	OnChange func(events.Fullscreen)
	// OnOrientation receives accepted orientation changes.
	OnOrientation func(angle int)
	// OnError receives environment errors: rejected requests and missing
	// native support.
	OnError func(error)
	Logger  *slog.Logger
}

type request struct {
	node string
	mode Mode
	exit bool
}

// Machine is the fullscreen/orientation state machine.
type Machine struct {
	opts   Options
	logger *slog.Logger

	phase  Phase
	mode   Mode
	node   string
	target string
	angle  int

	pending *request
	last    events.Fullscreen
	cancel  func()
	closed  bool
}

// New returns a machine in the normal phase.
func New(opts Options) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Machine{
		opts:   opts,
		logger: logger.With("component", "fullscreen"),
		last:   events.Fullscreen{IsMobile: opts.Mobile},
	}
	if m.nativeSupported() {
		m.cancel = opts.Capability.OnChange(m.onNativeChange)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return State{Phase: m.phase, Mode: m.mode, Node: m.node, Mobile: m.opts.Mobile, Angle: m.angle}
}

// Rotation is the angle applied to the layout axes. Only simulated mobile
// fullscreen rotates.
func (m *Machine) Rotation() int {
	if m.opts.Mobile && m.phase == PhaseFullscreen && m.mode == ModeSimulated {
		return m.angle
	}
	return 0
}

// Enter requests fullscreen for node: native on desktop, simulated on
// mobile or when native fullscreen is unavailable.
func (m *Machine) Enter(node string) {
	mode := ModeNative
	switch {
	case m.opts.Mobile:
		mode = ModeSimulated
	case !m.nativeSupported():
		mode = ModeSimulated
		m.fail(verrors.Environment("fullscreen.enter", verrors.ErrUnsupported))
	}
	m.request(node, mode)
}

// EnterSimulated requests fullscreen for node without the native API.
func (m *Machine) EnterSimulated(node string) {
	m.request(node, ModeSimulated)
}

// Toggle exits when fullscreen (or entering), otherwise enters node.
func (m *Machine) Toggle(node string) {
	if m.phase == PhaseFullscreen || m.phase == PhaseEntering {
		m.Exit()
		return
	}
	m.Enter(node)
}

// ToggleSimulated is Toggle for simulated fullscreen.
func (m *Machine) ToggleSimulated(node string) {
	if m.phase == PhaseFullscreen || m.phase == PhaseEntering {
		m.Exit()
		return
	}
	m.EnterSimulated(node)
}

func (m *Machine) request(node string, mode Mode) {
	if m.closed {
		return
	}
	switch m.phase {
	case PhaseFullscreen:
		if m.node == node && m.mode == mode {
			m.logger.Debug("fullscreen request ignored, node already active", "node", node)
			return
		}
		if m.mode == ModeSimulated && mode == ModeSimulated {
			m.node = node
			m.settle()
			return
		}
		m.pending = &request{node: node, mode: mode}
		m.exit()
	case PhaseEntering:
		if m.target == node {
			return
		}
		m.pending = &request{node: node, mode: mode}
	case PhaseExiting:
		m.pending = &request{node: node, mode: mode}
	default:
		m.begin(node, mode)
	}
}

func (m *Machine) begin(node string, mode Mode) {
	if mode == ModeSimulated {
		m.phase, m.mode, m.node = PhaseFullscreen, ModeSimulated, node
		m.settle()
		return
	}
	m.phase, m.target = PhaseEntering, node
	m.opts.Capability.Request(node, func(err error) { m.entered(node, err) })
}

func (m *Machine) entered(node string, err error) {
	if m.closed || m.phase != PhaseEntering || m.target != node {
		return
	}
	m.target = ""
	if err != nil {
		m.phase, m.mode, m.node = PhaseNormal, ModeNone, ""
		m.pending = nil
		m.fail(verrors.Environment("fullscreen.request", err))
		m.settle()
		return
	}
	m.phase, m.mode, m.node = PhaseFullscreen, ModeNative, node
	if !m.runPending() {
		m.settle()
	}
}

// Exit leaves fullscreen. It is a no-op in the normal phase.
func (m *Machine) Exit() {
	if m.closed {
		return
	}
	switch m.phase {
	case PhaseEntering:
		m.pending = &request{exit: true}
	case PhaseExiting:
		m.pending = nil
	case PhaseFullscreen:
		m.pending = nil
		if m.mode == ModeSimulated {
			m.phase, m.mode, m.node = PhaseNormal, ModeNone, ""
			m.settle()
			return
		}
		m.exit()
	}
}

func (m *Machine) exit() {
	if m.mode == ModeSimulated {
		m.phase, m.mode, m.node = PhaseNormal, ModeNone, ""
		m.runPending()
		return
	}
	m.phase = PhaseExiting
	m.opts.Capability.Exit(m.exited)
}

func (m *Machine) exited(err error) {
	if m.closed || m.phase != PhaseExiting {
		return
	}
	if err != nil {
		m.phase = PhaseFullscreen
		m.pending = nil
		m.fail(verrors.Environment("fullscreen.exit", err))
		m.settle()
		return
	}
	m.phase, m.mode, m.node = PhaseNormal, ModeNone, ""
	if !m.runPending() {
		m.settle()
	}
}

func (m *Machine) runPending() bool {
	p := m.pending
	m.pending = nil
	if p == nil {
		return false
	}
	if p.exit {
		m.Exit()
		if m.phase == PhaseNormal {
			m.settle()
		}
		return true
	}
	m.request(p.node, p.mode)
	if m.phase == PhaseNormal {
		m.settle()
	}
	return true
}

// onNativeChange follows fullscreen changes reported by the capability.
// While a request is in flight an empty active node is expected and does
// not mean the request failed.
func (m *Machine) onNativeChange(active string) {
	if m.closed {
		return
	}
	switch m.phase {
	case PhaseEntering:
		if active != "" && active == m.target {
			m.entered(active, nil)
		}
	case PhaseExiting:
		if active == "" {
			m.exited(nil)
		}
	case PhaseFullscreen:
		if m.mode != ModeNative {
			return
		}
		if active == "" {
			m.phase, m.mode, m.node = PhaseNormal, ModeNone, ""
			m.settle()
		} else if active != m.node {
			m.node = active
			m.settle()
		}
	case PhaseNormal:
		if active != "" {
			m.phase, m.mode, m.node = PhaseFullscreen, ModeNative, active
			m.settle()
		}
	}
}

// SetOrientation records the device orientation. Desktop devices ignore it.
func (m *Machine) SetOrientation(angle int) error {
	if m.closed {
		return nil
	}
	switch angle {
	case 0, 90, 180, 270:
	default:
		return verrors.Config("fullscreen.orientation", verrors.ErrInvalidValue, "angle %d", angle)
	}
	if !m.opts.Mobile {
		m.logger.Debug("orientation ignored on desktop", "angle", angle)
		return nil
	}
	if angle == m.angle {
		return nil
	}
	m.angle = angle
	if m.opts.OnOrientation != nil {
		m.opts.OnOrientation(angle)
	}
	return nil
}

// Close drops the capability subscription and leaves native fullscreen
// if it is engaged. Later calls on the machine do nothing.
func (m *Machine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.pending = nil
	if m.cancel != nil {
		m.cancel()
	}
	if m.nativeSupported() && (m.mode == ModeNative || m.phase == PhaseEntering) {
		m.opts.Capability.Exit(func(err error) {
			if err != nil {
				m.logger.Warn("exit native fullscreen on close failed", "error", err)
			}
		})
	}
}

func (m *Machine) settle() {
	change := events.Fullscreen{
		IsCurrentFullscreen: m.phase == PhaseFullscreen,
		IsFullscreen:        m.phase == PhaseFullscreen && m.mode == ModeNative,
		IsMobile:            m.opts.Mobile,
		Node:                m.node,
	}
	if change == m.last {
		return
	}
	m.last = change
	m.logger.Debug("fullscreen settled", "fullscreen", change.IsCurrentFullscreen, "native", change.IsFullscreen, "node", change.Node)
	if m.opts.OnChange != nil {
		m.opts.OnChange(change)
	}
}

func (m *Machine) fail(err error) {
	m.logger.Warn("fullscreen unavailable", "error", err)
	if m.opts.OnError != nil {
		m.opts.OnError(err)
	}
}

func (m *Machine) nativeSupported() bool {
	return m.opts.Capability != nil && m.opts.Capability.Supported()
}
