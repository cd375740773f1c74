// Package events defines the event vocabulary shared by the theme
// coordinator, its controls and external integrators.
//
// Integrators bind to the literal strings, so a name is never changed once
// released. New names may be added; removing or renaming one requires bumping
// Version and keeping the old literal as an alias.
package events

import "sort"

// Version of the event vocabulary.
const Version = 1

// Name identifies an event on a bus.
type Name string

// State events, one per ThemeState field.
const (
	Resize               Name = "resize"
	WidthChange          Name = "widthChange"
	HeightChange         Name = "heightChange"
	Play                 Name = "play"
	VolumeChange         Name = "volumechange"
	MutedChange          Name = "mutedChange"
	Loading              Name = "loading"
	RecTypeChange        Name = "recTypeChange"
	FullscreenChange     Name = "fullscreenChange"
	OrientationChange    Name = "orientationChange"
	ZoomingChange        Name = "zoomingChange"
	ZoomChange           Name = "zoomChange"
	RecordingChange      Name = "recordingChange"
	TalkingChange        Name = "talkingChange"
	RecordListChange     Name = "recordListChange"
	SpeedChange          Name = "speedChange"
	URLInfoChange        Name = "urlInfoChange"
	VideoLevelListChange Name = "videoLevelListChange"
	DefinitionChange     Name = "definitionChange"
	RecMonthChange       Name = "recMonthChange"
)

// Command events emitted by the coordinator for the embedding player.
const (
	Capture Name = "capturePicture"
	Seek    Name = "seek"
)

// Control lifecycle events, emitted on a control's own bus.
const (
	ControlMount           Name = "Control.mount"
	ControlUnmount         Name = "Control.unmount"
	ControlDestroy         Name = "Control.destroy"
	ControlPanelOpenChange Name = "Control.panelOpenChange"
	ControlAction          Name = "Control.action"
)

// Coordinator lifecycle events.
const (
	ThemeBeforeDestroy     Name = "Theme.beforeDestroy"
	ThemeDestroyed         Name = "Theme.destroyed"
	ThemeTemplateChange    Name = "Theme.templateChange"
	ThemeError             Name = "Theme.error"
	ThemeMessage           Name = "Theme.message"
	ThemeOverflowChange    Name = "Theme.overflowChange"
	ThemePosterChange      Name = "Theme.posterChange"
	ThemeScaleModeChange   Name = "Theme.scaleModeChange"
	ThemeBarsVisibleChange Name = "Theme.barsVisibleChange"
)

// DestroyOf returns the per-control destroy event, e.g. "playDestroy".
func DestroyOf(iconID string) Name {
	return Name(iconID + "Destroy")
}

var vocabulary = []Name{
	Resize, WidthChange, HeightChange, Play, VolumeChange, MutedChange, Loading,
	RecTypeChange, FullscreenChange, OrientationChange, ZoomingChange, ZoomChange,
	RecordingChange, TalkingChange, RecordListChange, SpeedChange, URLInfoChange,
	VideoLevelListChange, DefinitionChange, RecMonthChange,
	Capture, Seek,
	ControlMount, ControlUnmount, ControlDestroy, ControlPanelOpenChange, ControlAction,
	ThemeBeforeDestroy, ThemeDestroyed, ThemeTemplateChange, ThemeError, ThemeMessage,
	ThemeOverflowChange, ThemePosterChange, ThemeScaleModeChange, ThemeBarsVisibleChange,
}

// Vocabulary returns every fixed event name, sorted.
func Vocabulary() []Name {
	out := make([]Name, len(vocabulary))
	copy(out, vocabulary)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
