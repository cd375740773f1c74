package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the player chrome.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	CyclePalette key.Binding
	Escape       key.Binding

	// Playback
	Play       key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Seek       key.Binding
	Speed      key.Binding
	Definition key.Binding

	// Tools
	Zoom      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Capture   key.Binding
	Record    key.Binding
	Talk      key.Binding
	PTZ       key.Binding
	RecSource key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding

	// Layout
	More          key.Binding
	Fullscreen    key.Binding
	WebFullscreen key.Binding
	Rotate        key.Binding
	ScaleMode     key.Binding

	// Arrows are shared between seeking, volume and the PTZ panel.
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CyclePalette: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "palette"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit fullscreen/close"),
		),

		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Seek: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "seek"),
		),
		Speed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speed"),
		),
		Definition: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "quality"),
		),

		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "zoom out"),
		),
		Capture: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "snapshot"),
		),
		Record: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "record"),
		),
		Talk: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "talk"),
		),
		PTZ: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "ptz panel"),
		),
		RecSource: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "record source"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),

		More: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "more"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		WebFullscreen: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "window fullscreen"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "rotate"),
		),
		ScaleMode: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "scale mode"),
		),

		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Up:    key.NewBinding(key.WithKeys("up", "k")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Fullscreen, k.More, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Mute, k.VolumeUp, k.VolumeDown, k.Seek, k.Speed, k.Definition},
		{k.Zoom, k.ZoomIn, k.ZoomOut, k.Capture, k.Record, k.Talk},
		{k.PTZ, k.RecSource, k.PrevMonth, k.NextMonth},
		{k.More, k.Fullscreen, k.WebFullscreen, k.Rotate, k.ScaleMode},
		{k.CyclePalette, k.Escape, k.Help, k.Quit},
	}
}
