package layout

import (
	"fmt"

	"github.com/five82/vista/internal/control"
	verrors "github.com/five82/vista/internal/errors"
)

// Bar names.
const (
	Header = "header"
	Footer = "footer"
)

// Bar is an ordered two-region container of mounted controls.
type Bar struct {
	name  string
	left  []control.Control
	right []control.Control
	ids   map[string]struct{}
	last  Result
	sized []Item
}

// NewBar returns an empty bar.
func NewBar(name string) *Bar {
	return &Bar{name: name, ids: make(map[string]struct{})}
}

func (b *Bar) Name() string { return b.name }

// Add mounts c into region. A second control with the same icon id is a
// configuration error and leaves the bar unchanged.
func (b *Bar) Add(c control.Control, region string) error {
	if _, dup := b.ids[c.IconID()]; dup {
		return verrors.Config("bar.add", verrors.ErrDuplicateControl, "%s: %q", b.name, c.IconID())
	}
	switch region {
	case control.RegionLeft:
		b.left = append(b.left, c)
	case control.RegionRight:
		b.right = append(b.right, c)
	default:
		return verrors.Config("bar.add", verrors.ErrInvalidValue, "%s: region %q", b.name, region)
	}
	b.ids[c.IconID()] = struct{}{}
	c.Mount(b.name, region)
	return nil
}

// Controls returns every control in priority order: left region, then
// right, each in declaration order.
func (b *Bar) Controls() []control.Control {
	out := make([]control.Control, 0, len(b.left)+len(b.right))
	out = append(out, b.left...)
	return append(out, b.right...)
}

// Len returns the number of controls.
func (b *Bar) Len() int { return len(b.left) + len(b.right) }

// Items measures every control along the bar axis.
func (b *Bar) Items() []Item {
	all := b.Controls()
	items := make([]Item, len(all))
	for i, c := range all {
		items[i] = Item{ID: c.IconID(), Size: c.Measure().Width, Pinned: c.Options().Pinned}
	}
	return items
}

// Layout resolves the bar against available cells and applies the result
// to the controls' hidden flags. It reports whether the partition changed.
func (b *Bar) Layout(available, trigger int) (Result, bool) {
	items := b.Items()
	res := Resolve(available, items, trigger)
	hidden := make(map[string]struct{}, len(res.Overflowed))
	for _, id := range res.Overflowed {
		hidden[id] = struct{}{}
	}
	for _, c := range b.Controls() {
		_, h := hidden[c.IconID()]
		c.SetHidden(h)
	}
	changed := !res.Equal(b.last)
	b.last = res
	b.sized = items
	return res, changed
}

// Last returns the most recent layout result.
func (b *Bar) Last() Result { return b.last }

// Stale reports whether any control's natural size differs from the sizes
// the last Layout resolved.
func (b *Bar) Stale() bool {
	items := b.Items()
	if len(items) != len(b.sized) {
		return true
	}
	for i := range items {
		if items[i] != b.sized[i] {
			return true
		}
	}
	return false
}

// Visible returns the visible controls of region in order.
func (b *Bar) Visible(region string) []control.Control {
	src := b.left
	if region == control.RegionRight {
		src = b.right
	}
	var out []control.Control
	for _, c := range src {
		if !c.Hidden() {
			out = append(out, c)
		}
	}
	return out
}

// Overflowed returns the controls currently in the More panel, in priority
// order.
func (b *Bar) Overflowed() []control.Control {
	var out []control.Control
	for _, c := range b.Controls() {
		if c.Hidden() {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the control with iconID.
func (b *Bar) Find(iconID string) (control.Control, bool) {
	for _, c := range b.Controls() {
		if c.IconID() == iconID {
			return c, true
		}
	}
	return nil, false
}

// Destroy destroys every control and empties the bar.
func (b *Bar) Destroy() {
	for _, c := range b.Controls() {
		c.Destroy()
	}
	b.left, b.right = nil, nil
	b.ids = make(map[string]struct{})
	b.last = Result{}
	b.sized = nil
}

func (b *Bar) String() string {
	return fmt.Sprintf("%s(left=%d right=%d)", b.name, len(b.left), len(b.right))
}
