package control

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/state"
)

func measureText(s string) Size {
	return Size{Width: lipgloss.Width(s) + Padding, Height: 1}
}

func label(deps Deps, opts Options, key string) string {
	if opts.Label != "" {
		return opts.Label
	}
	return deps.text(key)
}

func join(glyph, text string) string {
	if text == "" {
		return glyph
	}
	return glyph + " " + text
}

// Toggle renders one boolean ThemeState field, or a flag the coordinator
// sets through SetActive when field is empty.
type Toggle struct {
	*Lifecycle
	deps      Deps
	field     state.Field
	on        bool
	glyphs    [2]string
	keys      [2]string
	actionKey string
}

func newToggle(iconID string, deps Deps, opts Options, field state.Field, glyphs, keys [2]string) *Toggle {
	t := &Toggle{
		Lifecycle: newLifecycle(iconID, deps, opts),
		deps:      deps,
		field:     field,
		glyphs:    glyphs,
		keys:      keys,
		actionKey: "toggle",
	}
	if field != "" {
		st := deps.state()
		if v, err := st.Get(field); err == nil {
			t.Update(state.Patch{field: v})
		}
		t.watch(deps.ThemeBus, t.Update, field)
	}
	return t
}

func (t *Toggle) Update(p state.Patch) {
	if t.field == "" {
		return
	}
	if b, ok := p[t.field].(bool); ok {
		t.on = b
		t.SetActive(b)
	}
}

// On reports the rendered boolean.
func (t *Toggle) On() bool {
	if t.field == "" {
		return t.Active()
	}
	return t.on
}

func (t *Toggle) Text() string {
	i := 0
	if t.On() {
		i = 1
	}
	return join(t.glyphs[i], label(t.deps, t.opts, t.keys[i]))
}

func (t *Toggle) Measure() Size     { return measureText(t.Text()) }
func (t *Toggle) Actions() []string { return []string{t.actionKey} }

// Volume renders volume and mute state.
type Volume struct {
	*Lifecycle
	deps   Deps
	volume float64
	muted  bool
}

func newVolume(deps Deps, opts Options) *Volume {
	v := &Volume{Lifecycle: newLifecycle(IconSound, deps, opts), deps: deps}
	st := deps.state()
	v.volume, v.muted = st.Volume, st.Muted
	v.watch(deps.ThemeBus, v.Update, state.FieldVolume, state.FieldMuted)
	return v
}

func (v *Volume) Update(p state.Patch) {
	if f, ok := p[state.FieldVolume].(float64); ok {
		v.volume = f
	}
	if b, ok := p[state.FieldMuted].(bool); ok {
		v.muted = b
		v.SetActive(b)
	}
}

func (v *Volume) Text() string {
	if v.muted {
		return join("✕", label(v.deps, v.opts, i18n.KeyMute))
	}
	return join("♪", fmt.Sprintf("%s %d%%", label(v.deps, v.opts, i18n.KeySound), int(math.Round(v.volume*100))))
}

func (v *Volume) Measure() Size     { return measureText(v.Text()) }
func (v *Volume) Actions() []string { return []string{"mute", "up", "down"} }

// Act fills the target volume for up and down.
func (v *Volume) Act(name string, value any) {
	if value == nil {
		switch name {
		case "up":
			value = round2(math.Min(1, v.volume+v.opts.Step))
		case "down":
			value = round2(math.Max(0, v.volume-v.opts.Step))
		}
	}
	v.Lifecycle.Act(name, value)
}

// MaxZoom bounds zoom in actions.
const MaxZoom = 8.0

// Zoom renders the digital zoom state.
type Zoom struct {
	*Lifecycle
	deps    Deps
	zooming bool
	factor  float64
}

func newZoom(deps Deps, opts Options) *Zoom {
	z := &Zoom{Lifecycle: newLifecycle(IconZoom, deps, opts), deps: deps}
	st := deps.state()
	z.zooming, z.factor = st.Zooming, st.Zoom
	z.SetActive(z.zooming)
	z.watch(deps.ThemeBus, z.Update, state.FieldZooming, state.FieldZoom)
	return z
}

func (z *Zoom) Update(p state.Patch) {
	if b, ok := p[state.FieldZooming].(bool); ok {
		z.zooming = b
		z.SetActive(b)
	}
	if f, ok := p[state.FieldZoom].(float64); ok {
		z.factor = f
	}
}

func (z *Zoom) Text() string {
	text := label(z.deps, z.opts, i18n.KeyZoom)
	if z.zooming {
		text = fmt.Sprintf("%s %.1fx", text, z.factor)
	}
	return join("⊕", text)
}

func (z *Zoom) Measure() Size     { return measureText(z.Text()) }
func (z *Zoom) Actions() []string { return []string{"toggle", "in", "out"} }

func (z *Zoom) Act(name string, value any) {
	if value == nil {
		switch name {
		case "in":
			value = round2(math.Min(MaxZoom, z.factor+z.opts.Step))
		case "out":
			value = round2(math.Max(1, z.factor-z.opts.Step))
		}
	}
	z.Lifecycle.Act(name, value)
}

// Definition cycles through the player's video levels.
type Definition struct {
	*Lifecycle
	deps   Deps
	levels []state.VideoLevel
	level  int
}

func newDefinition(deps Deps, opts Options) *Definition {
	d := &Definition{Lifecycle: newLifecycle(IconDefinition, deps, opts), deps: deps}
	st := deps.state().Clone()
	d.levels, d.level = st.VideoLevelList, st.VideoLevel
	d.SetDisabled(len(d.levels) == 0)
	d.watch(deps.ThemeBus, d.Update, state.FieldVideoLevelList, state.FieldVideoLevel)
	return d
}

func (d *Definition) Update(p state.Patch) {
	if list, ok := p[state.FieldVideoLevelList].([]state.VideoLevel); ok {
		d.levels = append([]state.VideoLevel(nil), list...)
		d.SetDisabled(len(d.levels) == 0)
	}
	if n, ok := p[state.FieldVideoLevel].(int); ok {
		d.level = n
	}
}

func (d *Definition) current() (state.VideoLevel, int) {
	for i, l := range d.levels {
		if l.Level == d.level {
			return l, i
		}
	}
	return state.VideoLevel{}, -1
}

func (d *Definition) Text() string {
	text := label(d.deps, d.opts, i18n.KeyDefinition)
	if l, i := d.current(); i >= 0 && l.Name != "" {
		text = l.Name
	}
	return join("▤", text)
}

func (d *Definition) Measure() Size     { return measureText(d.Text()) }
func (d *Definition) Actions() []string { return []string{"next"} }

func (d *Definition) Act(name string, value any) {
	if name == "next" && value == nil {
		if len(d.levels) == 0 {
			return
		}
		_, i := d.current()
		value = d.levels[(i+1)%len(d.levels)].Level
	}
	d.Lifecycle.Act(name, value)
}

// Speed cycles through the configured playback speeds.
type Speed struct {
	*Lifecycle
	deps  Deps
	speed float64
}

func newSpeed(deps Deps, opts Options) *Speed {
	s := &Speed{Lifecycle: newLifecycle(IconSpeed, deps, opts), deps: deps, speed: deps.state().Speed}
	s.watch(deps.ThemeBus, s.Update, state.FieldSpeed)
	return s
}

func (s *Speed) Update(p state.Patch) {
	if f, ok := p[state.FieldSpeed].(float64); ok {
		s.speed = f
		s.SetActive(f != 1)
	}
}

func (s *Speed) Text() string {
	return join("»", fmt.Sprintf("%s %gx", label(s.deps, s.opts, i18n.KeySpeed), s.speed))
}

func (s *Speed) Measure() Size     { return measureText(s.Text()) }
func (s *Speed) Actions() []string { return []string{"next"} }

func (s *Speed) Act(name string, value any) {
	if name == "next" && value == nil {
		speeds := s.opts.Speeds
		value = speeds[0]
		for i, v := range speeds {
			if v == s.speed {
				value = speeds[(i+1)%len(speeds)]
				break
			}
		}
	}
	s.Lifecycle.Act(name, value)
}

// RecSource selects one recording source (local, cloud, cloud record).
type RecSource struct {
	*Lifecycle
	deps  Deps
	glyph string
}

func newRecSource(iconID string, deps Deps, opts Options, glyph string) *RecSource {
	r := &RecSource{Lifecycle: newLifecycle(iconID, deps, opts), deps: deps, glyph: glyph}
	r.Update(state.Patch{state.FieldRecType: deps.state().RecType})
	r.watch(deps.ThemeBus, r.Update, state.FieldRecType)
	return r
}

func (r *RecSource) Update(p state.Patch) {
	if s, ok := p[state.FieldRecType].(string); ok {
		r.SetActive(s == r.iconID)
	}
}

func (r *RecSource) Text() string      { return join(r.glyph, label(r.deps, r.opts, r.iconID)) }
func (r *RecSource) Measure() Size     { return measureText(r.Text()) }
func (r *RecSource) Actions() []string { return []string{"select"} }

func (r *RecSource) Act(name string, value any) {
	if name == "select" && value == nil {
		value = r.iconID
	}
	r.Lifecycle.Act(name, value)
}

const monthLayout = "2006-01"

// DatePicker steps the recording month.
type DatePicker struct {
	*Lifecycle
	deps  Deps
	month string
}

func newDatePicker(deps Deps, opts Options) *DatePicker {
	d := &DatePicker{Lifecycle: newLifecycle(IconDatePicker, deps, opts), deps: deps, month: deps.state().RecMonth}
	d.watch(deps.ThemeBus, d.Update, state.FieldRecMonth)
	return d
}

func (d *DatePicker) Update(p state.Patch) {
	if s, ok := p[state.FieldRecMonth].(string); ok {
		d.month = s
	}
}

func (d *DatePicker) Text() string {
	text := d.month
	if text == "" {
		text = label(d.deps, d.opts, i18n.KeyDatePicker)
	}
	return join("▦", text)
}

func (d *DatePicker) Measure() Size     { return measureText(d.Text()) }
func (d *DatePicker) Actions() []string { return []string{"next", "prev"} }

func (d *DatePicker) Act(name string, value any) {
	if value == nil && (name == "next" || name == "prev") {
		base, err := time.Parse(monthLayout, d.month)
		if err != nil {
			base = d.deps.now()
		}
		delta := 1
		if name == "prev" {
			delta = -1
		}
		value = time.Date(base.Year(), base.Month()+time.Month(delta), 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
	}
	d.Lifecycle.Act(name, value)
}

// Info shows a read-only URLInfo attribute.
type Info struct {
	*Lifecycle
	deps  Deps
	value string
	glyph string
	pick  func(state.URLInfo) string
}

func newInfo(iconID string, deps Deps, opts Options, glyph string, pick func(state.URLInfo) string) *Info {
	i := &Info{Lifecycle: newLifecycle(iconID, deps, opts), deps: deps, glyph: glyph, pick: pick}
	i.value = pick(deps.state().URLInfo)
	i.watch(deps.ThemeBus, i.Update, state.FieldURLInfo)
	return i
}

func (i *Info) Update(p state.Patch) {
	if info, ok := p[state.FieldURLInfo].(state.URLInfo); ok {
		i.value = i.pick(info)
	}
}

func (i *Info) Text() string {
	if i.value == "" {
		return join(i.glyph, label(i.deps, i.opts, i.iconID))
	}
	return join(i.glyph, i.value)
}

func (i *Info) Measure() Size     { return measureText(i.Text()) }
func (i *Info) Actions() []string { return nil }

// RangeCells is the width of the drawn track of a Range.
const RangeCells = 12

// Range is a seekable track (progress, time line).
type Range struct {
	*Lifecycle
	deps    Deps
	value   float64
	records int
	key     string
}

func newRange(iconID string, deps Deps, opts Options, key string) *Range {
	r := &Range{Lifecycle: newLifecycle(iconID, deps, opts), deps: deps, value: opts.Min, key: key}
	if iconID == IconTimeLine {
		r.records = len(deps.state().RecordList)
		r.watch(deps.ThemeBus, r.Update, state.FieldRecordList)
	}
	return r
}

func (r *Range) Update(p state.Patch) {
	if list, ok := p[state.FieldRecordList].([]state.Record); ok && r.iconID == IconTimeLine {
		r.records = len(list)
		r.SetDisabled(r.records == 0)
	}
}

// Value returns the current position.
func (r *Range) Value() float64 { return r.value }

// SetValue moves the position, clamped to the range.
func (r *Range) SetValue(v float64) {
	r.value = math.Max(r.opts.Min, math.Min(r.opts.Max, v))
}

func (r *Range) fraction() float64 {
	return (r.value - r.opts.Min) / (r.opts.Max - r.opts.Min)
}

func (r *Range) Text() string {
	filled := int(math.Round(r.fraction() * RangeCells))
	track := strings.Repeat("━", filled) + strings.Repeat("─", RangeCells-filled)
	return label(r.deps, r.opts, r.key) + " " + track
}

func (r *Range) Measure() Size     { return measureText(r.Text()) }
func (r *Range) Actions() []string { return []string{"forward", "back", "seek"} }

func (r *Range) Act(name string, value any) {
	if value == nil {
		step := (r.opts.Max - r.opts.Min) / 20
		switch name {
		case "forward":
			value = math.Min(r.opts.Max, r.value+step)
		case "back":
			value = math.Max(r.opts.Min, r.value-step)
		}
	}
	if f, ok := value.(float64); ok && !r.Destroyed() && !r.Disabled() {
		r.SetValue(f)
	}
	r.Lifecycle.Act(name, value)
}

// HitTest maps a point inside the control box (w x h cells, in screen
// coordinates) to a range value. The container rotation decides which
// screen axis runs along the track.
func (r *Range) HitTest(x, y, w, h int) (float64, bool) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	var pos, span int
	switch r.rotation {
	case 90:
		pos, span = y, h
	case 180:
		pos, span = w-1-x, w
	case 270:
		pos, span = h-1-y, h
	default:
		pos, span = x, w
	}
	if span <= 1 {
		return r.opts.Min, true
	}
	frac := float64(pos) / float64(span-1)
	return r.opts.Min + frac*(r.opts.Max-r.opts.Min), true
}

// Button emits a single action.
type Button struct {
	*Lifecycle
	deps   Deps
	glyph  string
	key    string
	action string
}

func newButton(iconID string, deps Deps, opts Options, glyph, key, action string) *Button {
	return &Button{Lifecycle: newLifecycle(iconID, deps, opts), deps: deps, glyph: glyph, key: key, action: action}
}

func (b *Button) Update(state.Patch) {}
func (b *Button) Text() string       { return join(b.glyph, label(b.deps, b.opts, b.key)) }
func (b *Button) Measure() Size      { return measureText(b.Text()) }
func (b *Button) Actions() []string  { return []string{b.action} }

// Panel is a button with an open/closed panel (PTZ).
type Panel struct {
	*Button
	open bool
}

func (p *Panel) Actions() []string { return []string{"toggle", "up", "down", "left", "right"} }

// Open reports whether the panel is open.
func (p *Panel) Open() bool { return p.open }

// Act toggles the panel locally and announces it; directions are only
// forwarded while the panel is open.
func (p *Panel) Act(name string, value any) {
	if p.Destroyed() || p.Disabled() {
		return
	}
	switch name {
	case "toggle":
		p.open = !p.open
		p.SetActive(p.open)
		p.bus.Emit(events.ControlPanelOpenChange, events.PanelOpen{IconID: p.iconID, Open: p.open})
	case "up", "down", "left", "right":
		if !p.open {
			return
		}
	}
	p.Lifecycle.Act(name, value)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
