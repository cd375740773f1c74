package theme

import "github.com/five82/vista/internal/state"

// State returns a copy of ThemeState.
func (c *Coordinator) State() state.Theme { return c.state.Clone() }

// Get returns one ThemeState field by name.
func (c *Coordinator) Get(f state.Field) (any, error) {
	st := c.state.Clone()
	return st.Get(f)
}

func (c *Coordinator) Width() int                { return c.state.Width }
func (c *Coordinator) Height() int               { return c.state.Height }
func (c *Coordinator) Playing() bool             { return c.state.Playing }
func (c *Coordinator) Volume() float64           { return c.state.Volume }
func (c *Coordinator) Muted() bool               { return c.state.Muted }
func (c *Coordinator) Loading() bool             { return c.state.Loading }
func (c *Coordinator) RecType() string           { return c.state.RecType }
func (c *Coordinator) IsCurrentFullscreen() bool { return c.state.IsCurrentFullscreen }
func (c *Coordinator) OrientationAngle() int     { return c.state.OrientationAngle }
func (c *Coordinator) Zooming() bool             { return c.state.Zooming }
func (c *Coordinator) Zoom() float64             { return c.state.Zoom }
func (c *Coordinator) Recording() bool           { return c.state.Recording }
func (c *Coordinator) Talking() bool             { return c.state.Talking }
func (c *Coordinator) Speed() float64            { return c.state.Speed }
func (c *Coordinator) URLInfo() state.URLInfo    { return c.state.URLInfo }
func (c *Coordinator) VideoLevel() int           { return c.state.VideoLevel }
func (c *Coordinator) RecMonth() string          { return c.state.RecMonth }

func (c *Coordinator) RecordList() []state.Record {
	return append([]state.Record(nil), c.state.RecordList...)
}

func (c *Coordinator) VideoLevelList() []state.VideoLevel {
	return append([]state.VideoLevel(nil), c.state.VideoLevelList...)
}
