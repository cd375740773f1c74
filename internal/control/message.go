package control

import "github.com/five82/vista/internal/state"

// IconMessage is the id of the coordinator-owned message toast.
const IconMessage = "message"

// Message levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Message is the toast that renders Theme.error and notice text. The
// coordinator owns it; it never sits in a bar.
type Message struct {
	*Lifecycle
	text  string
	level string
}

// NewMessage returns a hidden message control.
func NewMessage(deps Deps) *Message {
	m := &Message{Lifecycle: newLifecycle(IconMessage, deps, Options{})}
	m.SetHidden(true)
	return m
}

// Show displays text at level.
func (m *Message) Show(text, level string) {
	if m.destroyed {
		return
	}
	if level == "" {
		level = LevelInfo
	}
	m.text, m.level = text, level
	m.SetHidden(false)
}

// Clear hides the toast.
func (m *Message) Clear() {
	m.text, m.level = "", ""
	m.SetHidden(true)
}

func (m *Message) Level() string      { return m.level }
func (m *Message) Update(state.Patch) {}
func (m *Message) Text() string       { return m.text }
func (m *Message) Measure() Size      { return measureText(m.text) }
func (m *Message) Actions() []string  { return nil }
