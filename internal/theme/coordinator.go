package theme

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/eventbus"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/fullscreen"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/layout"
	"github.com/five82/vista/internal/metrics"
	"github.com/five82/vista/internal/state"
	"github.com/five82/vista/internal/templates"
	"github.com/five82/vista/internal/timers"
)

// Scale modes accepted by SetScaleMode.
const (
	ScaleFill    = 0
	ScaleContain = 1
	ScaleCover   = 2
)

const (
	defaultNode       = "player"
	defaultDebounce   = 120 * time.Millisecond
	defaultMessageTTL = 3 * time.Second
)

// Options configure a Coordinator.
type Options struct {
	// Template is applied during New. Nil starts empty.
	Template   *templates.Data
	Mobile     bool
	Lang       string
	Translator i18n.Translator
	Poster     string
	// Node names the container that goes fullscreen.
	Node string
	// Width and Height bound the container outside fullscreen. Zero means
	// the whole window.
	Width  int
	Height int

	Capability fullscreen.Capability
	Clock      clockwork.Clock
	// Post runs timer callbacks on the coordinator's loop. It is required;
	// a timers.Queue works for callers without a loop of their own.
	Post timers.PostFunc

	ResizeDebounce time.Duration
	// AutoHide hides the bars after this much inactivity. Zero disables.
	AutoHide   time.Duration
	MessageTTL time.Duration

	Recorder metrics.Recorder
	Logger   *slog.Logger
	// OnError receives environment errors in addition to Theme.error.
	OnError func(error)
}

// Coordinator owns ThemeState and the controls built from a template.
type Coordinator struct {
	id     uuid.UUID
	opts   Options
	logger *slog.Logger
	rec    metrics.Recorder

	bus    *eventbus.Bus
	timers *timers.Registry
	fs     *fullscreen.Machine

	state    state.Theme
	window   events.Size
	template *templates.Data

	header  *layout.Bar
	footer  *layout.Bar
	more    map[string]control.Control
	message *control.Message
	subs    eventbus.Group

	poster      string
	scaleMode   int
	barsVisible bool
	moreOpen    bool

	laying     bool
	again      bool
	destroying bool
	destroyed  bool
}

// New builds a coordinator and applies opts.Template.
func New(opts Options) (*Coordinator, error) {
	if opts.Post == nil {
		return nil, verrors.Config("new", verrors.ErrInvalidValue, "post is required")
	}
	if opts.Node == "" {
		opts.Node = defaultNode
	}
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = defaultDebounce
	}
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = defaultMessageTTL
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if opts.Translator == nil {
		opts.Translator = i18n.Default()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	c := &Coordinator{
		id:          id,
		opts:        opts,
		logger:      logger.With("component", "theme", "theme_id", id.String()),
		rec:         rec,
		state:       state.Defaults(),
		header:      layout.NewBar(layout.Header),
		footer:      layout.NewBar(layout.Footer),
		more:        make(map[string]control.Control),
		poster:      opts.Poster,
		barsVisible: true,
	}
	c.bus = eventbus.New("theme", c.busOptions()...)
	c.timers = timers.NewRegistry(opts.Clock, opts.Post)
	c.timers.OnFired(c.rec.IncTimerFired)
	c.fs = fullscreen.New(fullscreen.Options{
		Mobile:        opts.Mobile,
		Capability:    opts.Capability,
		OnChange:      c.onFullscreen,
		OnOrientation: c.onOrientation,
		OnError:       c.reportError,
		Logger:        c.logger,
	})
	c.message = control.NewMessage(c.controlDeps())

	if opts.Template != nil {
		if err := c.ChangeTheme(opts.Template); err != nil {
			c.Destroy()
			return nil, err
		}
	}
	return c, nil
}

func (c *Coordinator) busOptions() []eventbus.Option {
	return []eventbus.Option{
		eventbus.WithLogger(c.logger),
		eventbus.WithEmitHook(func(name events.Name, handlers int) {
			c.rec.IncEvent("theme", name, handlers)
		}),
		eventbus.WithErrorHandler(func(name events.Name, _ error) {
			c.rec.IncHandlerPanic("theme", name)
		}),
	}
}

func (c *Coordinator) controlDeps() control.Deps {
	return control.Deps{
		Translator: c.opts.Translator,
		Lang:       c.opts.Lang,
		ThemeBus:   c.bus,
		State:      func() state.Theme { return c.state.Clone() },
		Now:        c.timers.Clock().Now,
		Logger:     c.logger,
		BusOptions: []eventbus.Option{
			eventbus.WithErrorHandler(func(name events.Name, _ error) {
				c.rec.IncHandlerPanic("control", name)
			}),
		},
	}
}

// ID identifies this coordinator instance in logs.
func (c *Coordinator) ID() string { return c.id.String() }

// Bus is the coordinator bus. Subscribe to field events, Theme.* and the
// forwarded Control.* events here.
func (c *Coordinator) Bus() *eventbus.Bus { return c.bus }

// Destroyed reports whether Destroy has run or is running.
func (c *Coordinator) Destroyed() bool { return c.inert() }

// inert is true from the first Theme.beforeDestroy handler on.
func (c *Coordinator) inert() bool { return c.destroying || c.destroyed }

func (c *Coordinator) misuse(op string) error {
	err := verrors.Lifecycle(op)
	c.logger.Warn("call on destroyed theme ignored", "op", op)
	return err
}

func (c *Coordinator) emit(name events.Name, payload any) {
	c.bus.Emit(name, payload)
}

// apply writes p into ThemeState and emits one event per changed field.
func (c *Coordinator) apply(p state.Patch) error {
	changed, err := c.state.Apply(p)
	if err != nil {
		return err
	}
	for _, f := range changed {
		ev, _ := state.EventOf(f)
		v, _ := c.state.Get(f)
		c.emit(ev, v)
	}
	if len(changed) > 0 {
		c.relayoutIfStale()
	}
	return nil
}

// relayoutIfStale schedules a settled relayout when a state change altered
// the natural size of a laid-out control.
func (c *Coordinator) relayoutIfStale() {
	if c.laying || c.inert() {
		return
	}
	for _, bar := range c.bars() {
		if bar.Stale() {
			c.timers.After(timers.KeyResize, c.opts.ResizeDebounce, c.relayout)
			return
		}
	}
}

// owned fields are driven by Resize and the fullscreen machine.
var owned = map[state.Field]bool{
	state.FieldWidth:               true,
	state.FieldHeight:              true,
	state.FieldIsCurrentFullscreen: true,
	state.FieldOrientationAngle:    true,
}

// ApplyPlayerState merges player-reported fields. Unknown fields and
// fields owned by the coordinator are rejected and nothing is applied.
func (c *Coordinator) ApplyPlayerState(p state.Patch) error {
	if c.inert() {
		return c.misuse("applyPlayerState")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	for f := range p {
		if owned[f] {
			return verrors.Config("applyPlayerState", verrors.ErrInvalidValue, "%s is owned by the theme", f)
		}
	}
	return c.apply(p)
}

// Resize records the window size and schedules a relayout once the size
// settles.
func (c *Coordinator) Resize(width, height int) error {
	if c.inert() {
		return c.misuse("resize")
	}
	if width < 0 || height < 0 {
		return verrors.Config("resize", verrors.ErrInvalidValue, "%dx%d", width, height)
	}
	c.window = events.Size{Width: width, Height: height}
	if err := c.syncSize(); err != nil {
		return err
	}
	c.emit(events.Resize, c.window)
	c.timers.After(timers.KeyResize, c.opts.ResizeDebounce, c.relayout)
	return nil
}

func (c *Coordinator) containerSize() (int, int) {
	w, h := c.window.Width, c.window.Height
	if !c.state.IsCurrentFullscreen {
		if c.opts.Width > 0 && c.opts.Width < w {
			w = c.opts.Width
		}
		if c.opts.Height > 0 && c.opts.Height < h {
			h = c.opts.Height
		}
	}
	return w, h
}

func (c *Coordinator) syncSize() error {
	w, h := c.containerSize()
	return c.apply(state.Patch{state.FieldWidth: w, state.FieldHeight: h})
}

// LayoutSize is the container size along the layout axes: width and height
// swap while a rotation of 90 or 270 degrees is applied.
func (c *Coordinator) LayoutSize() events.Size {
	w, h := c.containerSize()
	if r := c.fs.Rotation(); r == 90 || r == 270 {
		w, h = h, w
	}
	return events.Size{Width: w, Height: h}
}

// Rotation is the rotation applied to the container.
func (c *Coordinator) Rotation() int { return c.fs.Rotation() }

// Relayout resolves both bars now. It is idempotent.
func (c *Coordinator) Relayout() error {
	if c.inert() {
		return c.misuse("relayout")
	}
	c.timers.Cancel(timers.KeyResize)
	c.relayout()
	return nil
}

// relayout resolves both bars. A relayout requested from inside a handler
// it triggered runs once more after the current pass instead of nesting.
func (c *Coordinator) relayout() {
	if c.inert() {
		return
	}
	if c.laying {
		c.again = true
		return
	}
	c.laying = true
	defer func() { c.laying = false }()

	for pass := 0; pass < 2; pass++ {
		c.again = false
		available := c.LayoutSize().Width
		anyTrigger := false
		for _, bar := range c.bars() {
			more := c.more[bar.Name()]
			trigger := 0
			if more != nil {
				trigger = more.Measure().Width
			}
			res, changed := bar.Layout(available, trigger)
			if more != nil {
				more.SetHidden(!res.Trigger)
			}
			anyTrigger = anyTrigger || res.Trigger
			if changed {
				c.rec.ObserveOverflow(bar.Name(), len(res.Visible), len(res.Overflowed))
				c.emit(events.ThemeOverflowChange, events.Overflow{
					Bar:        bar.Name(),
					Visible:    res.Visible,
					Overflowed: res.Overflowed,
				})
			}
		}
		if !anyTrigger && c.moreOpen {
			c.setMoreOpen(false)
		}
		if !c.again {
			return
		}
	}
}

func (c *Coordinator) bars() []*layout.Bar {
	return []*layout.Bar{c.header, c.footer}
}

// Header returns the header bar.
func (c *Coordinator) Header() *layout.Bar { return c.header }

// Footer returns the footer bar.
func (c *Coordinator) Footer() *layout.Bar { return c.footer }

// MoreTrigger returns the More trigger of a bar, if the bar has controls.
func (c *Coordinator) MoreTrigger(bar string) (control.Control, bool) {
	m, ok := c.more[bar]
	return m, ok
}

// Message returns the message toast.
func (c *Coordinator) Message() *control.Message { return c.message }

// Template returns a copy of the applied template, or nil.
func (c *Coordinator) Template() *templates.Data { return c.template.Clone() }

// Control finds a control by icon id in either bar.
func (c *Coordinator) Control(iconID string) (control.Control, bool) {
	for _, bar := range c.bars() {
		if ctl, ok := bar.Find(iconID); ok {
			return ctl, true
		}
	}
	return nil, false
}

// Trigger performs action on the control iconID as if the user had
// interacted with it. An empty action uses the control's primary action.
func (c *Coordinator) Trigger(iconID, action string, value any) error {
	if c.inert() {
		return c.misuse("trigger")
	}
	ctl, ok := c.Control(iconID)
	if !ok && iconID == control.IconMore {
		for _, bar := range c.bars() {
			if m, has := c.more[bar.Name()]; has && !m.Hidden() {
				ctl, ok = m, true
				break
			}
		}
	}
	if !ok {
		return verrors.Config("trigger", verrors.ErrUnknownControl, "%q", iconID)
	}
	if action == "" {
		actions := ctl.Actions()
		if len(actions) == 0 {
			return nil
		}
		action = actions[0]
	}
	ctl.Act(action, value)
	return nil
}

// Poster returns the current poster.
func (c *Coordinator) Poster() string { return c.poster }

// SetPoster replaces the poster. An empty poster restores the one the
// coordinator was created with.
func (c *Coordinator) SetPoster(poster string) error {
	if c.inert() {
		return c.misuse("setPoster")
	}
	if poster == "" {
		poster = c.opts.Poster
	}
	if poster == c.poster {
		return nil
	}
	c.poster = poster
	c.emit(events.ThemePosterChange, poster)
	return nil
}

// ScaleMode returns the current scale mode.
func (c *Coordinator) ScaleMode() int { return c.scaleMode }

// SetScaleMode selects fill (0), contain (1) or cover (2).
func (c *Coordinator) SetScaleMode(mode int) error {
	if c.inert() {
		return c.misuse("setScaleMode")
	}
	if mode < ScaleFill || mode > ScaleCover {
		return verrors.Config("setScaleMode", verrors.ErrInvalidValue, "mode %d", mode)
	}
	if mode == c.scaleMode {
		return nil
	}
	c.scaleMode = mode
	c.emit(events.ThemeScaleModeChange, mode)
	return nil
}

// ShowMessage displays text in the message toast until MessageTTL passes.
func (c *Coordinator) ShowMessage(text, level string) error {
	if c.inert() {
		return c.misuse("showMessage")
	}
	c.showMessage(text, level)
	return nil
}

func (c *Coordinator) showMessage(text, level string) {
	c.message.Show(text, level)
	c.emit(events.ThemeMessage, events.Message{Text: text, Level: c.message.Level()})
	c.timers.After(timers.KeyMessage, c.opts.MessageTTL, func() {
		c.message.Clear()
		c.emit(events.ThemeMessage, events.Message{})
	})
}

// reportError surfaces an environment error without returning it.
func (c *Coordinator) reportError(err error) {
	if c.inert() {
		return
	}
	c.logger.Warn("theme error", "error", err)
	if verrors.Is(err, verrors.CategoryEnvironment) {
		c.rec.IncFullscreenError()
	}
	c.emit(events.ThemeError, events.Error{Err: err})
	c.showMessage(c.messageText(err), control.LevelError)
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}

func (c *Coordinator) messageText(err error) string {
	if verrors.Is(err, verrors.CategoryEnvironment) {
		return c.opts.Translator.Text(i18n.KeyFullscreenFail, c.opts.Lang)
	}
	return err.Error()
}

// Destroy tears down every control, bar, timer and listener. It emits
// Theme.beforeDestroy and Theme.destroyed once; later calls do nothing.
func (c *Coordinator) Destroy() {
	if c.inert() {
		c.logger.Warn("destroy called on destroyed theme")
		return
	}
	c.destroying = true
	c.emit(events.ThemeBeforeDestroy, nil)
	c.timers.Close()
	c.teardown()
	c.message.Destroy()
	c.fs.Close()
	c.destroyed = true
	c.emit(events.ThemeDestroyed, nil)
	c.bus.Close()
}

func (c *Coordinator) String() string {
	name := ""
	if c.template != nil {
		name = c.template.Name
	}
	return fmt.Sprintf("theme(%s template=%q %s %s)", c.id, name, c.header, c.footer)
}
