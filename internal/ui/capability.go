package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vista/internal/fullscreen"
)

var _ fullscreen.Capability = (*altScreen)(nil)

// altScreen is native fullscreen for a terminal: the container takes over
// the alternate screen. Requests are queued as tea commands and complete
// when the matching altScreenMsg comes back through Update.
type altScreen struct {
	disabled bool

	active  string
	waiting func(error)
	cmds    []tea.Cmd

	listeners map[int]func(string)
	nextID    int
}

// altScreenMsg reports that the terminal switched screens.
type altScreenMsg struct {
	node  string
	enter bool
}

func newAltScreen(disabled bool) *altScreen {
	return &altScreen{disabled: disabled, listeners: make(map[int]func(string))}
}

func (a *altScreen) Supported() bool { return !a.disabled }

func (a *altScreen) Active() string { return a.active }

func (a *altScreen) Request(node string, done func(error)) {
	a.waiting = done
	a.cmds = append(a.cmds, tea.Sequence(tea.EnterAltScreen, func() tea.Msg {
		return altScreenMsg{node: node, enter: true}
	}))
}

func (a *altScreen) Exit(done func(error)) {
	a.waiting = done
	a.cmds = append(a.cmds, tea.Sequence(tea.ExitAltScreen, func() tea.Msg {
		return altScreenMsg{}
	}))
}

func (a *altScreen) OnChange(fn func(active string)) func() {
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() { delete(a.listeners, id) }
}

// leave drops the alternate screen on the user's behalf, the way a browser
// leaves fullscreen on Escape. It reports false when nothing is active.
func (a *altScreen) leave() bool {
	if a.active == "" {
		return false
	}
	a.cmds = append(a.cmds, tea.Sequence(tea.ExitAltScreen, func() tea.Msg {
		return altScreenMsg{}
	}))
	return true
}

// settle records the switch, completes the pending request and notifies
// listeners.
func (a *altScreen) settle(msg altScreenMsg) {
	if msg.enter {
		a.active = msg.node
	} else {
		a.active = ""
	}
	if done := a.waiting; done != nil {
		a.waiting = nil
		done(nil)
	}
	for _, fn := range a.listeners {
		fn(a.active)
	}
}

// drain returns the queued terminal commands.
func (a *altScreen) drain() tea.Cmd {
	if len(a.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(a.cmds...)
	a.cmds = nil
	return cmd
}
