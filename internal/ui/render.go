package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vista/internal/control"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/layout"
	"github.com/five82/vista/internal/theme"
)

// zone is the clickable span of a control on one row.
type zone struct {
	row, x0, x1 int
	ctl         control.Control
}

// frame is the rendered container: one string per row plus the zones of
// every drawn control.
type frame struct {
	rows  []string
	zones []zone
}

func (f frame) hit(x, y int) (zone, bool) {
	for _, z := range f.zones {
		if z.row == y && x >= z.x0 && x < z.x1 {
			return z, true
		}
	}
	return zone{}, false
}

var scaleNames = map[int]string{
	theme.ScaleFill:    "fill",
	theme.ScaleContain: "contain",
	theme.ScaleCover:   "cover",
}

// frame renders the container at its layout size: header, surface, More
// panel, message toast and footer from top to bottom.
func (m Model) frame() frame {
	c := m.coord
	size := c.LayoutSize()
	w, h := size.Width, size.Height
	if w <= 0 || h <= 0 {
		return frame{}
	}

	var f frame
	showHeader := c.BarsVisible() && c.Header().Len() > 0
	showFooter := c.BarsVisible() && c.Footer().Len() > 0
	showToast := !c.Message().Hidden()

	var panel []string
	var panelCtls []control.Control
	if c.MoreOpen() {
		panelCtls = c.Overflowed()
		panel = m.renderPanel(panelCtls)
	}

	fixed := 0
	for _, on := range []bool{showHeader, showFooter, showToast} {
		if on {
			fixed++
		}
	}
	if fixed+len(panel) > h {
		panel, panelCtls = nil, nil
	}
	surface := max(h-fixed-len(panel), 0)

	if showHeader {
		m.appendBar(&f, c.Header(), layout.Header, w)
	}
	if surface > 0 {
		f.rows = append(f.rows, m.renderSurface(w, surface)...)
	}
	if len(panel) > 0 {
		m.appendPanel(&f, panel, panelCtls, w)
	}
	if showToast {
		st := m.styles.Message
		if c.Message().Level() == control.LevelError {
			st = m.styles.MessageError
		}
		f.rows = append(f.rows, fit(st.Render(c.Message().Text()), w, m.styles.SurfaceText))
	}
	if showFooter {
		m.appendBar(&f, c.Footer(), layout.Footer, w)
	}
	if len(f.rows) > h {
		f.rows = f.rows[:h]
	}
	return f
}

func (m Model) controlStyle(ctl control.Control) lipgloss.Style {
	switch {
	case ctl.Disabled():
		return m.styles.ControlDisabled
	case ctl.Active():
		return m.styles.ControlActive
	default:
		return m.styles.Control
	}
}

// appendBar draws the visible left controls flush left and the visible
// right controls, followed by the More trigger, flush right.
func (m Model) appendBar(f *frame, bar *layout.Bar, name string, w int) {
	row := len(f.rows)
	right := bar.Visible(control.RegionRight)
	if more, ok := m.coord.MoreTrigger(name); ok && !more.Hidden() {
		right = append(right, more)
	}

	var b strings.Builder
	x := 0
	for _, ctl := range bar.Visible(control.RegionLeft) {
		x = m.appendCell(f, &b, ctl, row, x)
	}
	rightWidth := 0
	for _, ctl := range right {
		rightWidth += ctl.Measure().Width
	}
	if gap := w - x - rightWidth; gap > 0 {
		b.WriteString(m.styles.Bar.Render(strings.Repeat(" ", gap)))
		x += gap
	}
	for _, ctl := range right {
		x = m.appendCell(f, &b, ctl, row, x)
	}
	f.rows = append(f.rows, fit(b.String(), w, m.styles.Bar))
}

func (m Model) appendCell(f *frame, b *strings.Builder, ctl control.Control, row, x int) int {
	cell := m.controlStyle(ctl).Render(ctl.Text())
	width := lipgloss.Width(cell)
	b.WriteString(cell)
	f.zones = append(f.zones, zone{row: row, x0: x, x1: x + width, ctl: ctl})
	return x + width
}

// renderPanel lists the overflowed controls, one per line, under a title.
func (m Model) renderPanel(ctls []control.Control) []string {
	if len(ctls) == 0 {
		return nil
	}
	lines := []string{m.styles.PanelTitle.Render(m.translator.Text(i18n.KeyMore, m.lang))}
	for _, ctl := range ctls {
		lines = append(lines, m.controlStyle(ctl).Render(ctl.Text()))
	}
	return strings.Split(m.styles.Panel.Render(strings.Join(lines, "\n")), "\n")
}

// appendPanel right-aligns the panel. Controls start below the top border
// and the title, inside the border and padding.
func (m Model) appendPanel(f *frame, panel []string, ctls []control.Control, w int) {
	top := len(f.rows)
	pw := 0
	for _, line := range panel {
		pw = max(pw, lipgloss.Width(line))
	}
	left := max(w-pw, 0)
	for _, line := range panel {
		f.rows = append(f.rows, fit(lipgloss.PlaceHorizontal(w, lipgloss.Right, line), w, m.styles.SurfaceText))
	}
	for i, ctl := range ctls {
		x0 := left + 2
		f.zones = append(f.zones, zone{row: top + 2 + i, x0: x0, x1: x0 + ctl.Measure().Width, ctl: ctl})
	}
}

// renderSurface draws the video area: poster or status text centered, with
// a status line for playback, zoom, scale and rotation.
func (m Model) renderSurface(w, h int) []string {
	c := m.coord
	var lines []string
	switch {
	case m.offline:
		lines = append(lines, m.translator.Text(i18n.KeyOffline, m.lang))
	case c.Loading():
		lines = append(lines, m.translator.Text(i18n.KeyLoading, m.lang))
	case c.Poster() != "":
		lines = append(lines, c.Poster())
	}

	status := []string{"⏸"}
	if c.Playing() {
		status[0] = "▶"
	}
	status = append(status, scaleNames[c.ScaleMode()])
	if c.Zooming() {
		status = append(status, fmt.Sprintf("%.1fx zoom", c.Zoom()))
	}
	if c.Speed() != 1 {
		status = append(status, fmt.Sprintf("%gx", c.Speed()))
	}
	if r := c.Rotation(); r != 0 {
		status = append(status, fmt.Sprintf("↻ %d°", r))
	}
	if m.ptzOpen() {
		status = append(status, m.translator.Text(i18n.KeyPTZ, m.lang)+" ← ↑ ↓ →")
	}
	lines = append(lines, strings.Join(status, "  "))

	content := m.styles.SurfaceText.Render(strings.Join(lines, "\n"))
	placed := lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.styles.Palette.Background)))
	rows := strings.Split(placed, "\n")
	for i := range rows {
		rows[i] = fit(rows[i], w, m.styles.SurfaceText)
	}
	return rows
}

// fit pads or truncates a rendered line to exactly w cells.
func fit(line string, w int, pad lipgloss.Style) string {
	if lw := lipgloss.Width(line); lw < w {
		return line + pad.Render(strings.Repeat(" ", w-lw))
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(line)
}
