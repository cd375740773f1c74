package fullscreen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
)

// fakeCap is a native capability whose completions are driven by the test.
type fakeCap struct {
	supported bool
	active    string
	requests  []string
	exits     int
	pending   []func(error)
	listeners []func(string)
}

func (f *fakeCap) Supported() bool { return f.supported }
func (f *fakeCap) Active() string  { return f.active }

func (f *fakeCap) Request(node string, done func(error)) {
	f.requests = append(f.requests, node)
	f.pending = append(f.pending, func(err error) {
		if err == nil {
			f.active = node
		}
		done(err)
	})
}

func (f *fakeCap) Exit(done func(error)) {
	f.exits++
	f.pending = append(f.pending, func(err error) {
		if err == nil {
			f.active = ""
		}
		done(err)
	})
}

func (f *fakeCap) OnChange(fn func(string)) func() {
	f.listeners = append(f.listeners, fn)
	return func() { f.listeners = nil }
}

// resolve completes the oldest outstanding call.
func (f *fakeCap) resolve(err error) {
	next := f.pending[0]
	f.pending = f.pending[1:]
	next(err)
}

func (f *fakeCap) notify(active string) {
	for _, fn := range f.listeners {
		fn(active)
	}
}

type recorder struct {
	changes []events.Fullscreen
	errs    []error
	angles  []int
}

func newMachine(mobile bool, capability Capability) (*Machine, *recorder) {
	r := &recorder{}
	m := New(Options{
		Mobile:        mobile,
		Capability:    capability,
		OnChange:      func(c events.Fullscreen) { r.changes = append(r.changes, c) },
		OnError:       func(err error) { r.errs = append(r.errs, err) },
		OnOrientation: func(a int) { r.angles = append(r.angles, a) },
	})
	return m, r
}

func TestNativeEnterExit(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)

	m.Enter("player")
	assert.Equal(t, PhaseEntering, m.State().Phase)
	assert.Empty(t, r.changes, "no change until settled")

	fc.notify("")
	assert.Equal(t, PhaseEntering, m.State().Phase, "empty active during entry is not an exit")

	fc.resolve(nil)
	require.Len(t, r.changes, 1)
	assert.Equal(t, events.Fullscreen{IsCurrentFullscreen: true, IsFullscreen: true, Node: "player"}, r.changes[0])

	m.Exit()
	assert.Equal(t, PhaseExiting, m.State().Phase)
	fc.notify("")
	fc.resolve(nil)
	require.Len(t, r.changes, 2)
	assert.False(t, r.changes[1].IsCurrentFullscreen)
	assert.Equal(t, PhaseNormal, m.State().Phase)
}

func TestRequestOnActiveNodeIgnored(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)
	m.Enter("player")
	fc.resolve(nil)

	m.Enter("player")
	assert.Len(t, fc.requests, 1)
	assert.Len(t, r.changes, 1)
	assert.Equal(t, PhaseFullscreen, m.State().Phase)
}

func TestSwitchNodeExitsFirstAndEmitsOnce(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)
	m.Enter("a")
	fc.resolve(nil)
	r.changes = nil

	m.Enter("b")
	assert.Equal(t, 1, fc.exits, "old node exits before the new request")
	assert.Len(t, fc.requests, 1)

	fc.resolve(nil)
	assert.Equal(t, []string{"a", "b"}, fc.requests)
	assert.Equal(t, PhaseEntering, m.State().Phase)

	fc.resolve(nil)
	require.Len(t, r.changes, 1)
	assert.Equal(t, "b", r.changes[0].Node)
	assert.True(t, r.changes[0].IsCurrentFullscreen)
	assert.Equal(t, "b", fc.Active())
}

func TestRejectedRequestRevertsToNormal(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)

	m.Enter("player")
	fc.resolve(errors.New("no user gesture"))

	assert.Equal(t, PhaseNormal, m.State().Phase)
	assert.False(t, m.State().IsCurrentFullscreen())
	assert.Empty(t, r.changes, "state never left normal from the listener's view")
	require.Len(t, r.errs, 1)
	assert.True(t, verrors.Is(r.errs[0], verrors.CategoryEnvironment))
}

func TestExitWhileEnteringSettlesNormal(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)

	m.Enter("player")
	m.Exit()
	fc.resolve(nil)
	assert.Equal(t, PhaseExiting, m.State().Phase)
	fc.resolve(nil)

	assert.Equal(t, PhaseNormal, m.State().Phase)
	assert.Empty(t, r.changes)
}

func TestExternalExitIsFollowed(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)
	m.Enter("player")
	fc.resolve(nil)

	fc.active = ""
	fc.notify("")
	assert.Equal(t, PhaseNormal, m.State().Phase)
	require.Len(t, r.changes, 2)
}

func TestUnsupportedFallsBackToSimulated(t *testing.T) {
	m, r := newMachine(false, &fakeCap{supported: false})
	m.Enter("player")

	assert.Equal(t, ModeSimulated, m.State().Mode)
	require.Len(t, r.changes, 1)
	assert.False(t, r.changes[0].IsFullscreen)
	require.Len(t, r.errs, 1)
	assert.ErrorIs(t, r.errs[0], verrors.ErrUnsupported)
}

func TestMobileSimulatedAndOrientation(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(true, fc)

	require.NoError(t, m.SetOrientation(90))
	assert.Equal(t, 0, m.Rotation(), "no rotation outside fullscreen")

	m.Toggle("player")
	assert.Empty(t, fc.requests, "mobile never calls the native API")
	assert.Equal(t, 90, m.Rotation())
	require.Len(t, r.changes, 1)
	assert.True(t, r.changes[0].IsMobile)

	require.NoError(t, m.SetOrientation(270))
	require.NoError(t, m.SetOrientation(270))
	assert.Equal(t, []int{90, 270}, r.angles)
	assert.Len(t, r.changes, 1, "orientation does not toggle fullscreen")
	assert.Equal(t, 270, m.Rotation())

	err := m.SetOrientation(45)
	require.ErrorIs(t, err, verrors.ErrInvalidValue)

	m.Toggle("player")
	assert.Len(t, r.changes, 2)
	assert.Equal(t, 0, m.Rotation())
}

func TestDesktopIgnoresOrientation(t *testing.T) {
	m, r := newMachine(false, &fakeCap{supported: true})
	require.NoError(t, m.SetOrientation(90))
	assert.Empty(t, r.angles)
}

func TestSimulatedToNativeSwitch(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)

	m.EnterSimulated("player")
	require.Len(t, r.changes, 1)

	m.Enter("player")
	assert.Equal(t, PhaseEntering, m.State().Phase)
	fc.resolve(nil)

	require.Len(t, r.changes, 2)
	assert.True(t, r.changes[1].IsFullscreen)
}

func TestCloseExitsNativeAndGoesInert(t *testing.T) {
	fc := &fakeCap{supported: true}
	m, r := newMachine(false, fc)
	m.Enter("player")
	fc.resolve(nil)

	m.Close()
	assert.Equal(t, 1, fc.exits)
	assert.Nil(t, fc.listeners)
	fc.resolve(nil)

	m.Enter("other")
	assert.Len(t, fc.requests, 1)
	assert.Len(t, r.changes, 1)
}
