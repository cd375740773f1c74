package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/prefs"
	"github.com/five82/vista/internal/state"
	"github.com/five82/vista/internal/style"
	"github.com/five82/vista/internal/templates"
	"github.com/five82/vista/internal/theme"
	"github.com/five82/vista/internal/timers"
)

// Options configure the UI.
type Options struct {
	// Theme configures the coordinator. Capability defaults to the
	// terminal alternate screen and Run forwards Post callbacks to the
	// program in order.
	Theme theme.Options
	// NoAltScreen disables native fullscreen; requests fall back to the
	// simulated mode.
	NoAltScreen bool

	Store     *state.Store
	Templates <-chan *templates.Data
	PollTick  time.Duration

	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
}

const (
	defaultPollTick = time.Second
	helpRows        = 1
)

// Model is the root Bubble Tea model. It owns the coordinator; every call
// into it happens on the program loop.
type Model struct {
	coord  *theme.Coordinator
	screen *altScreen
	logger *slog.Logger

	store     *state.Store
	templates <-chan *templates.Data
	pollTick  time.Duration

	translator i18n.Translator
	lang       string

	keys      keyMap
	help      help.Model
	styles    style.Styles
	prefs     prefs.Prefs
	prefsPath string

	width   int
	height  int
	version uint64
	offline bool
}

// New builds the model and its coordinator.
func New(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	screen := newAltScreen(opts.NoAltScreen)
	if opts.Theme.Capability == nil {
		opts.Theme.Capability = screen
	}
	if opts.Theme.Translator == nil {
		opts.Theme.Translator = i18n.Default()
	}
	if opts.Theme.Lang == "" {
		opts.Theme.Lang = "en"
	}
	if opts.Theme.Logger == nil {
		opts.Theme.Logger = logger
	}
	coord, err := theme.New(opts.Theme)
	if err != nil {
		return Model{}, err
	}

	pollTick := opts.PollTick
	if pollTick <= 0 || pollTick > time.Second {
		pollTick = defaultPollTick
	}

	m := Model{
		coord:      coord,
		screen:     screen,
		logger:     logger.With("component", "ui"),
		store:      opts.Store,
		templates:  opts.Templates,
		pollTick:   pollTick,
		translator: opts.Theme.Translator,
		lang:       opts.Theme.Lang,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		prefs:      opts.Prefs,
		prefsPath:  opts.PrefsPath,
	}
	m.setPalette(opts.Prefs.Palette)
	return m, nil
}

// Coordinator exposes the coordinator driven by this model.
func (m Model) Coordinator() *theme.Coordinator { return m.coord }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, tickCmd(m.pollTick))
	}
	if m.templates != nil {
		cmds = append(cmds, waitTemplate(m.templates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.report("resize", m.coord.Resize(msg.Width, max(msg.Height-helpRows, 0)))

	case callMsg:
		msg()

	case altScreenMsg:
		m.screen.settle(msg)

	case tickMsg:
		m.syncStore()
		cmd = tickCmd(m.pollTick)

	case templateMsg:
		m.applyTemplate(msg.data)
		cmd = waitTemplate(m.templates)
	}
	return m, tea.Batch(cmd, m.screen.drain())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.coord.Destroyed() {
		return ""
	}
	if m.width == 0 {
		return m.translator.Text(i18n.KeyLoading, m.lang)
	}
	rows := m.frame().rows
	if !m.coord.IsCurrentFullscreen() {
		rows = append(rows, m.styles.Help.Render(m.help.View(m.keys)))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) setPalette(name string) {
	m.styles = style.Get(name).Styles()
	m.prefs.Palette = m.styles.Palette.Name
	m.help.Styles.ShortKey = m.styles.Help.Foreground(lipgloss.Color(m.styles.Palette.Accent))
	m.help.Styles.FullKey = m.help.Styles.ShortKey
}

func (m *Model) cyclePalette() {
	m.setPalette(style.Next(m.styles.Palette.Name))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// syncStore applies a new player snapshot to the coordinator.
func (m *Model) syncStore() {
	if m.store == nil {
		return
	}
	snap := m.store.Snapshot()
	if offline := snap.IsOffline(); offline != m.offline {
		m.offline = offline
		if offline {
			m.logger.Warn("player offline", "error", snap.LastError, "failures", snap.ConsecutiveFailures)
			m.report("showMessage", m.coord.ShowMessage(m.translator.Text(i18n.KeyOffline, m.lang), control.LevelError))
		}
	}
	if snap.Version == m.version {
		return
	}
	m.version = snap.Version
	m.report("applyPlayerState", m.coord.ApplyPlayerState(snap.Patch))
}

func (m *Model) applyTemplate(d *templates.Data) {
	if d == nil {
		return
	}
	if err := m.coord.ChangeTheme(d); err != nil {
		m.report("changeTheme", err)
		return
	}
	m.logger.Info("template applied", "template", d.Name)
}

// report logs err and surfaces it in the toast. Calls after destroy are
// only logged.
func (m *Model) report(op string, err error) {
	switch {
	case err == nil:
	case verrors.Is(err, verrors.CategoryLifecycle):
		m.logger.Debug("ignored", "op", op, "error", err)
	default:
		m.logger.Warn("operation failed", "op", op, "error", err)
		if !m.coord.Destroyed() {
			_ = m.coord.ShowMessage(err.Error(), control.LevelError)
		}
	}
}

// Messages

type tickMsg time.Time

type templateMsg struct{ data *templates.Data }

// callMsg runs a coordinator timer callback on the program loop.
type callMsg func()

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitTemplate(ch <-chan *templates.Data) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return templateMsg{data: d}
	}
}

// sender queues timer callbacks and forwards them to the program from one
// goroutine, so they arrive in the order they were posted.
type sender struct {
	queue *timers.Queue
	send  func(tea.Msg)
}

func newSender() *sender {
	return &sender{queue: timers.NewQueue(0)}
}

func (s *sender) post(fn func()) {
	s.queue.Post(func() { s.send(callMsg(fn)) })
}

// forward delivers posted callbacks through send until ctx is done.
func (s *sender) forward(ctx context.Context, send func(tea.Msg)) {
	s.send = send
	s.queue.Run(ctx)
}
