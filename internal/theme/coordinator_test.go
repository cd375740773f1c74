package theme

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/layout"
	"github.com/five82/vista/internal/metrics"
	"github.com/five82/vista/internal/state"
	"github.com/five82/vista/internal/templates"
	"github.com/five82/vista/internal/timers"
)

// syncCap completes native requests immediately.
type syncCap struct {
	fail   error
	active string
	fns    []func(string)
}

func (s *syncCap) Supported() bool { return true }
func (s *syncCap) Active() string  { return s.active }

func (s *syncCap) Request(node string, done func(error)) {
	if s.fail != nil {
		done(s.fail)
		return
	}
	s.active = node
	done(nil)
}

func (s *syncCap) Exit(done func(error)) {
	s.active = ""
	done(nil)
}

func (s *syncCap) OnChange(fn func(string)) func() {
	s.fns = append(s.fns, fn)
	return func() { s.fns = nil }
}

type harness struct {
	t      *testing.T
	c      *Coordinator
	clock  *clockwork.FakeClock
	calls  chan func()
	seen   []events.Name
	values map[events.Name][]any
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{t: t, clock: clockwork.NewFakeClock(), calls: make(chan func(), 16), values: map[events.Name][]any{}}
	opts.Clock = h.clock
	opts.Post = func(fn func()) { h.calls <- fn }
	c, err := New(opts)
	require.NoError(t, err)
	h.c = c
	for _, name := range events.Vocabulary() {
		c.Bus().On(name, func(p any) {
			h.seen = append(h.seen, name)
			h.values[name] = append(h.values[name], p)
		})
	}
	return h
}

func (h *harness) reset() {
	h.seen = nil
	h.values = map[events.Name][]any{}
}

func (h *harness) count(name events.Name) int { return len(h.values[name]) }

// runNext waits up to timeout for one posted callback and runs it.
func (h *harness) runNext(timeout time.Duration) bool {
	select {
	case fn := <-h.calls:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}

// advance moves the fake clock and runs the one timer callback it fires.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.clock.Advance(d)
	require.True(h.t, h.runNext(time.Second), "expected a timer to fire")
}

func footerTemplate(ids ...string) *templates.Data {
	d := &templates.Data{Name: "test"}
	for _, id := range ids {
		d.Footer.Items = append(d.Footer.Items, templates.Item{IconID: id})
	}
	return d
}

func iconIDs(ctls []control.Control) []string {
	out := make([]string, len(ctls))
	for i, c := range ctls {
		out[i] = c.IconID()
	}
	return out
}

func TestChangeTheme_GroupsAtTopOfRegion(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(
		control.IconPlay, control.IconDeviceName, control.IconSound, control.IconDeviceID,
	)})
	assert.Equal(t,
		[]string{control.IconDeviceID, control.IconDeviceName, control.IconPlay, control.IconSound},
		iconIDs(h.c.Footer().Controls()))
	assert.Equal(t, 0, h.c.Header().Len())
	_, hasHeaderMore := h.c.MoreTrigger(layout.Header)
	assert.False(t, hasHeaderMore)
}

func TestChangeTheme_NamedTemplate(t *testing.T) {
	d, ok := templates.Named(templates.PCRec)
	require.True(t, ok)
	h := newHarness(t, Options{Template: d})

	assert.Equal(t, []string{control.IconDeviceID, control.IconDeviceName, control.IconRec, control.IconCloudRec},
		iconIDs(h.c.Header().Controls()))
	assert.Equal(t, templates.PCRec, h.c.Template().Name)
}

func TestChangeTheme_InvalidKeepsCurrentControls(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay)})
	play, ok := h.c.Control(control.IconPlay)
	require.True(t, ok)

	bad := footerTemplate(control.IconSound)
	bad.Header.Items = []templates.Item{{IconID: control.IconSound}}
	err := h.c.ChangeTheme(bad)
	require.ErrorIs(t, err, verrors.ErrDuplicateControl)

	err = h.c.ChangeTheme(&templates.Data{Footer: templates.Bar{Items: []templates.Item{
		{IconID: control.IconProgress, Options: map[string]any{"min": 5, "max": 1}},
	}}})
	require.ErrorIs(t, err, verrors.ErrInvalidRange)

	assert.False(t, play.Destroyed())
	assert.True(t, play.Mounted())
}

func TestChangeTheme_NilClearsThenRebuilds(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay, control.IconSound)})
	play, _ := h.c.Control(control.IconPlay)

	require.NoError(t, h.c.ChangeTheme(nil))
	assert.True(t, play.Destroyed())
	assert.Equal(t, 0, h.c.Footer().Len())
	assert.Nil(t, h.c.Template())
	_, ok := h.c.MoreTrigger(layout.Footer)
	assert.False(t, ok)

	require.NoError(t, h.c.ChangeTheme(footerTemplate(control.IconPlay)))
	again, ok := h.c.Control(control.IconPlay)
	require.True(t, ok)
	assert.NotSame(t, play, again)
	assert.True(t, again.Mounted())
}

func TestChangeTheme_TearsDownBeforeMounting(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay)})
	h.reset()

	require.NoError(t, h.c.ChangeTheme(footerTemplate(control.IconPlay)))

	lastDestroy, firstMount := -1, -1
	for i, name := range h.seen {
		if name == events.ControlDestroy {
			lastDestroy = i
		}
		if name == events.ControlMount && firstMount < 0 {
			firstMount = i
		}
	}
	require.GreaterOrEqual(t, lastDestroy, 0)
	require.GreaterOrEqual(t, firstMount, 0)
	assert.Less(t, lastDestroy, firstMount, "no overlap between old and new controls")
}

func TestResize_RelayoutAfterSettle(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(
		control.IconPlay, control.IconCapturePicture, control.IconSound, control.IconTalk,
	)})
	play, _ := h.c.Control(control.IconPlay)
	capture, _ := h.c.Control(control.IconCapturePicture)
	more, ok := h.c.MoreTrigger(layout.Footer)
	require.True(t, ok)
	width := play.Measure().Width + capture.Measure().Width + more.Measure().Width

	require.NoError(t, h.c.Resize(1000, 40))
	h.advance(defaultDebounce)
	assert.Empty(t, h.c.Overflowed())
	assert.True(t, more.Hidden())
	h.reset()

	require.NoError(t, h.c.Resize(width+5, 40))
	require.NoError(t, h.c.Resize(width, 40))
	assert.Equal(t, 0, h.count(events.ThemeOverflowChange), "no relayout before the size settles")
	assert.Equal(t, 2, h.count(events.Resize))

	h.advance(defaultDebounce)
	require.Equal(t, 1, h.count(events.ThemeOverflowChange))
	ov := h.values[events.ThemeOverflowChange][0].(events.Overflow)
	assert.Equal(t, layout.Footer, ov.Bar)
	assert.Equal(t, []string{control.IconPlay, control.IconCapturePicture}, ov.Visible)
	assert.Equal(t, []string{control.IconSound, control.IconTalk}, ov.Overflowed)
	assert.False(t, more.Hidden())

	require.NoError(t, h.c.Relayout())
	assert.Equal(t, 1, h.count(events.ThemeOverflowChange), "idempotent on unchanged input")

	require.NoError(t, h.c.Trigger(control.IconMore, "", nil))
	assert.True(t, h.c.MoreOpen())

	require.NoError(t, h.c.Resize(1000, 40))
	h.advance(defaultDebounce)
	assert.False(t, h.c.MoreOpen(), "panel closes once nothing overflows")
	assert.True(t, more.Hidden())
	assert.Equal(t, 1000, h.c.Width())
}

func TestResize_ReentrantRelayoutRunsAfterPass(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay, control.IconSound)})
	calls := 0
	h.c.Bus().On(events.ThemeOverflowChange, func(any) {
		calls++
		require.NoError(t, h.c.Relayout())
	})
	require.NoError(t, h.c.Resize(1000, 10))
	h.advance(defaultDebounce)
	assert.Equal(t, 1, calls)
	assert.Empty(t, h.c.Overflowed())
}

func TestContainerBoundsOutsideFullscreen(t *testing.T) {
	h := newHarness(t, Options{Width: 80, Height: 20, Capability: &syncCap{}, Template: footerTemplate(control.IconExpend)})
	require.NoError(t, h.c.Resize(200, 50))
	assert.Equal(t, 80, h.c.Width())
	assert.Equal(t, 20, h.c.Height())

	require.NoError(t, h.c.Fullscreen())
	assert.True(t, h.c.IsCurrentFullscreen())
	assert.Equal(t, 200, h.c.Width())
	expend, _ := h.c.Control(control.IconExpend)
	assert.True(t, expend.Active())
}

func TestApplyPlayerState(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay, control.IconDefinition)})
	h.reset()

	err := h.c.ApplyPlayerState(state.Patch{
		state.FieldPlaying:        true,
		state.FieldVideoLevelList: []state.VideoLevel{{Level: 1, Name: "HD"}},
		state.FieldVideoLevel:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, []events.Name{events.Play, events.VideoLevelListChange, events.DefinitionChange}, h.seen)
	assert.True(t, h.c.Playing())

	def, _ := h.c.Control(control.IconDefinition)
	assert.Equal(t, "▤ HD", def.Text())
	assert.False(t, def.Disabled())

	err = h.c.ApplyPlayerState(state.Patch{state.FieldMuted: true, "brightness": 1})
	require.ErrorIs(t, err, verrors.ErrUnknownField)
	assert.False(t, h.c.Muted())

	err = h.c.ApplyPlayerState(state.Patch{state.FieldIsCurrentFullscreen: true})
	require.Error(t, err)
	assert.True(t, verrors.Is(err, verrors.CategoryConfig))
}

func TestControlActionsMutateThroughCoordinator(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(
		control.IconPlay, control.IconSound, control.IconZoom, control.IconCapturePicture, control.IconCloudRec,
	)})
	h.reset()

	require.NoError(t, h.c.Trigger(control.IconPlay, "", nil))
	assert.True(t, h.c.Playing())
	play, _ := h.c.Control(control.IconPlay)
	assert.True(t, play.Active())

	require.NoError(t, h.c.Trigger(control.IconSound, "down", nil))
	assert.InDelta(t, 0.9, h.c.Volume(), 1e-9)
	require.NoError(t, h.c.Trigger(control.IconSound, "mute", nil))
	assert.True(t, h.c.Muted())

	require.NoError(t, h.c.Trigger(control.IconZoom, "in", nil))
	assert.True(t, h.c.Zooming())
	assert.Equal(t, 1.5, h.c.Zoom())
	require.NoError(t, h.c.Trigger(control.IconZoom, "toggle", nil))
	assert.False(t, h.c.Zooming())
	assert.Equal(t, 1.0, h.c.Zoom())

	require.NoError(t, h.c.Trigger(control.IconCapturePicture, "", nil))
	assert.Equal(t, 1, h.count(events.Capture))

	require.NoError(t, h.c.Trigger(control.IconCloudRec, "", nil))
	assert.Equal(t, control.IconCloudRec, h.c.RecType())

	assert.Equal(t, 7, h.count(events.ControlAction))
	require.ErrorIs(t, h.c.Trigger("hologram", "", nil), verrors.ErrUnknownControl)
}

func TestFullscreenRejectedSurfacesThroughMessage(t *testing.T) {
	var reported []error
	h := newHarness(t, Options{
		Capability: &syncCap{fail: errors.New("denied")},
		OnError:    func(err error) { reported = append(reported, err) },
		Template:   footerTemplate(control.IconExpend),
	})
	h.reset()

	require.NoError(t, h.c.ToggleFullscreen())
	assert.False(t, h.c.IsCurrentFullscreen())
	assert.Equal(t, 0, h.count(events.FullscreenChange))
	assert.Equal(t, 1, h.count(events.ThemeError))
	require.Len(t, reported, 1)
	assert.True(t, verrors.Is(reported[0], verrors.CategoryEnvironment))

	msg := h.c.Message()
	assert.False(t, msg.Hidden())
	assert.Equal(t, "Fullscreen unavailable", msg.Text())

	h.advance(defaultMessageTTL)
	assert.True(t, msg.Hidden())
}

func TestMobileOrientationInFullscreen(t *testing.T) {
	h := newHarness(t, Options{Mobile: true, Template: footerTemplate(control.IconPlay, control.IconProgress)})
	require.NoError(t, h.c.Resize(40, 100))
	h.advance(defaultDebounce)

	require.NoError(t, h.c.Fullscreen())
	require.True(t, h.c.IsCurrentFullscreen())
	assert.False(t, h.c.FullscreenState().Mode == "native")
	h.reset()

	require.NoError(t, h.c.SetOrientation(90))
	assert.Equal(t, 1, h.count(events.OrientationChange))
	assert.Equal(t, 0, h.count(events.FullscreenChange))
	assert.Equal(t, 90, h.c.OrientationAngle())
	assert.Equal(t, events.Size{Width: 100, Height: 40}, h.c.LayoutSize())

	progress, _ := h.c.Control(control.IconProgress)
	assert.Equal(t, 90, progress.Rotation())

	h.advance(defaultDebounce)
	assert.Equal(t, 1, h.count(events.OrientationChange))
	assert.Equal(t, 0, h.count(events.FullscreenChange))
}

func TestSetPosterRoundTrip(t *testing.T) {
	h := newHarness(t, Options{Poster: "cover.png"})
	require.NoError(t, h.c.SetPoster("live.png"))
	assert.Equal(t, "live.png", h.c.Poster())
	require.NoError(t, h.c.SetPoster(""))
	assert.Equal(t, "cover.png", h.c.Poster())
	assert.Equal(t, []any{"live.png", "cover.png"}, h.values[events.ThemePosterChange])
}

func TestSetScaleMode(t *testing.T) {
	h := newHarness(t, Options{})
	require.NoError(t, h.c.SetScaleMode(ScaleCover))
	require.NoError(t, h.c.SetScaleMode(ScaleCover))
	assert.Equal(t, 1, h.count(events.ThemeScaleModeChange))
	require.ErrorIs(t, h.c.SetScaleMode(3), verrors.ErrInvalidValue)
}

func TestAutoHide(t *testing.T) {
	h := newHarness(t, Options{AutoHide: 5 * time.Second, Template: footerTemplate(control.IconPlay)})
	assert.True(t, h.c.BarsVisible())

	h.advance(5 * time.Second)
	assert.False(t, h.c.BarsVisible())

	h.c.Interact()
	assert.True(t, h.c.BarsVisible())
	assert.Equal(t, []any{false, true}, h.values[events.ThemeBarsVisibleChange])
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay), AutoHide: time.Second})
	play, _ := h.c.Control(control.IconPlay)
	require.NoError(t, h.c.Resize(100, 20))
	require.NoError(t, h.c.ShowMessage("hello", ""))

	before, destroyed := 0, 0
	h.c.Bus().On(events.ThemeBeforeDestroy, func(any) { before++ })
	h.c.Bus().On(events.ThemeDestroyed, func(any) {
		destroyed++
		require.ErrorIs(t, h.c.Resize(1, 1), verrors.ErrDestroyed)
	})

	h.c.Destroy()
	h.c.Destroy()

	assert.Equal(t, 1, before)
	assert.Equal(t, 1, destroyed)
	assert.True(t, play.Destroyed())
	assert.Equal(t, 0, h.c.timers.Len(), "pending timers are cancelled")

	h.clock.Advance(time.Minute)
	assert.False(t, h.runNext(50*time.Millisecond), "no callback after destroy")

	err := h.c.ChangeTheme(footerTemplate(control.IconPlay))
	require.ErrorIs(t, err, verrors.ErrDestroyed)
	assert.True(t, verrors.Is(err, verrors.CategoryLifecycle))
	require.ErrorIs(t, h.c.SetPoster("x"), verrors.ErrDestroyed)
	require.ErrorIs(t, h.c.Fullscreen(), verrors.ErrDestroyed)
}

func TestDestroy_FromBeforeDestroyHandler(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay)})
	before, destroyed := 0, 0
	h.c.Bus().On(events.ThemeBeforeDestroy, func(any) {
		before++
		assert.True(t, h.c.Destroyed())
		h.c.Destroy()
		require.ErrorIs(t, h.c.Resize(1, 1), verrors.ErrDestroyed)
	})
	h.c.Bus().On(events.ThemeDestroyed, func(any) { destroyed++ })

	h.c.Destroy()

	assert.Equal(t, 1, before)
	assert.Equal(t, 1, destroyed)
}

func TestStateChangeThatWidensControlsRelayouts(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconPlay, control.IconZoom, control.IconTalk)})
	width := 0
	for _, ctl := range h.c.Footer().Controls() {
		width += ctl.Measure().Width
	}
	require.NoError(t, h.c.Resize(width, 20))
	h.advance(defaultDebounce)
	require.Empty(t, h.c.Overflowed())
	more, _ := h.c.MoreTrigger(layout.Footer)
	require.True(t, more.Hidden())

	require.NoError(t, h.c.Trigger(control.IconZoom, "toggle", nil))
	require.NoError(t, h.c.ApplyPlayerState(state.Patch{state.FieldPlaying: true}))
	require.True(t, h.c.Footer().Stale())

	h.advance(defaultDebounce)
	assert.False(t, h.c.Footer().Stale())
	assert.Equal(t, []string{control.IconZoom, control.IconTalk}, iconIDs(h.c.Overflowed()))
	assert.False(t, more.Hidden())
	assert.LessOrEqual(t, h.c.Footer().Last().Used, width)
}

func TestStateChangeWithoutSizeChangeSchedulesNothing(t *testing.T) {
	h := newHarness(t, Options{Template: footerTemplate(control.IconTalk)})
	require.NoError(t, h.c.Resize(100, 20))
	h.advance(defaultDebounce)

	require.NoError(t, h.c.ApplyPlayerState(state.Patch{state.FieldRecMonth: "2024-05"}))
	assert.False(t, h.c.timers.Pending(timers.KeyResize))
}

func TestNew_RequiresPost(t *testing.T) {
	_, err := New(Options{Clock: clockwork.NewFakeClock()})
	require.Error(t, err)
	assert.True(t, verrors.Is(err, verrors.CategoryConfig))
	assert.ErrorIs(t, err, verrors.ErrInvalidValue)
}

// timerRecorder keeps the keys of fired timers.
type timerRecorder struct {
	metrics.NoopRecorder
	fired []string
}

func (r *timerRecorder) IncTimerFired(key string) { r.fired = append(r.fired, key) }

func TestTimerCallbacksAreRecorded(t *testing.T) {
	rec := &timerRecorder{}
	h := newHarness(t, Options{Recorder: rec, AutoHide: 5 * time.Second, Template: footerTemplate(control.IconPlay)})

	h.advance(5 * time.Second)
	assert.Equal(t, []string{timers.KeyAutoHide}, rec.fired)

	require.NoError(t, h.c.Resize(200, 40))
	h.advance(defaultDebounce)
	assert.Equal(t, []string{timers.KeyAutoHide, timers.KeyResize}, rec.fired)
}
