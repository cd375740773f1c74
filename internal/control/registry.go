package control

import (
	"sort"
	"sync"

	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/i18n"
	"github.com/five82/vista/internal/state"
)

// Icon ids of the built-in controls.
const (
	IconPlay           = "play"
	IconCapturePicture = "capturePicture"
	IconSound          = "sound"
	IconPTZ            = "ptz"
	IconRecordVideo    = "recordvideo"
	IconTalk           = "talk"
	IconZoom           = "zoom"
	IconDefinition     = "definition"
	IconSpeed          = "speed"
	IconWebExpend      = "webExpend"
	IconExpend         = "expend"
	IconDeviceID       = "deviceID"
	IconDeviceName     = "deviceName"
	IconRec            = "rec"
	IconCloudRec       = "cloudRec"
	IconCloudRecord    = "cloudRecord"
	IconDatePicker     = "datePicker"
	IconTimeLine       = "timeLine"
	IconProgress       = "progress"
	IconMore           = "more"
)

// Factory builds one control from parsed options.
type Factory func(deps Deps, opts Options) Control

var factories = sync.OnceValue(func() map[string]Factory {
	return map[string]Factory{
		IconPlay: func(d Deps, o Options) Control {
			return newToggle(IconPlay, d, o, state.FieldPlaying, [2]string{"▶", "⏸"}, [2]string{i18n.KeyPlay, i18n.KeyPause})
		},
		IconRecordVideo: func(d Deps, o Options) Control {
			return newToggle(IconRecordVideo, d, o, state.FieldRecording, [2]string{"○", "●"}, [2]string{i18n.KeyRecordVideo, i18n.KeyRecordVideo})
		},
		IconTalk: func(d Deps, o Options) Control {
			return newToggle(IconTalk, d, o, state.FieldTalking, [2]string{"☏", "☎"}, [2]string{i18n.KeyTalk, i18n.KeyTalk})
		},
		IconExpend: func(d Deps, o Options) Control {
			return newToggle(IconExpend, d, o, state.FieldIsCurrentFullscreen, [2]string{"⤢", "⤡"}, [2]string{i18n.KeyExpend, i18n.KeyExitExpend})
		},
		IconWebExpend: func(d Deps, o Options) Control {
			return newToggle(IconWebExpend, d, o, "", [2]string{"▭", "▣"}, [2]string{i18n.KeyWebExpend, i18n.KeyExitExpend})
		},
		IconSound:      func(d Deps, o Options) Control { return newVolume(d, o) },
		IconZoom:       func(d Deps, o Options) Control { return newZoom(d, o) },
		IconDefinition: func(d Deps, o Options) Control { return newDefinition(d, o) },
		IconSpeed:      func(d Deps, o Options) Control { return newSpeed(d, o) },
		IconCapturePicture: func(d Deps, o Options) Control {
			return newButton(IconCapturePicture, d, o, "◉", i18n.KeyCapturePicture, "capture")
		},
		IconMore: func(d Deps, o Options) Control {
			return newButton(IconMore, d, o, "⋯", i18n.KeyMore, "toggle")
		},
		IconPTZ: func(d Deps, o Options) Control {
			return &Panel{Button: newButton(IconPTZ, d, o, "✥", i18n.KeyPTZ, "toggle")}
		},
		IconRec:         func(d Deps, o Options) Control { return newRecSource(IconRec, d, o, "▣") },
		IconCloudRec:    func(d Deps, o Options) Control { return newRecSource(IconCloudRec, d, o, "☁") },
		IconCloudRecord: func(d Deps, o Options) Control { return newRecSource(IconCloudRecord, d, o, "☁") },
		IconDatePicker:  func(d Deps, o Options) Control { return newDatePicker(d, o) },
		IconDeviceID: func(d Deps, o Options) Control {
			return newInfo(IconDeviceID, d, o, "#", func(u state.URLInfo) string { return u.DeviceSerial })
		},
		IconDeviceName: func(d Deps, o Options) Control {
			return newInfo(IconDeviceName, d, o, "◈", func(u state.URLInfo) string { return u.DeviceName })
		},
		IconProgress: func(d Deps, o Options) Control { return newRange(IconProgress, d, o, i18n.KeyProgress) },
		IconTimeLine: func(d Deps, o Options) Control { return newRange(IconTimeLine, d, o, i18n.KeyTimeLine) },
	}
})

// Known reports whether iconID names a built-in control.
func Known(iconID string) bool {
	_, ok := factories()[iconID]
	return ok
}

// IconIDs lists the built-in control ids, sorted.
func IconIDs() []string {
	ids := make([]string, 0, len(factories()))
	for id := range factories() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks iconID and its options without building anything.
func Validate(iconID string, raw map[string]any) error {
	if !Known(iconID) {
		return verrors.Config("control", verrors.ErrUnknownControl, "%q", iconID)
	}
	_, err := ParseOptions(iconID, raw)
	return err
}

// New builds the control for iconID. Unknown ids and invalid options are
// configuration errors; nothing is constructed in that case.
func New(iconID string, deps Deps, raw map[string]any) (Control, error) {
	factory, ok := factories()[iconID]
	if !ok {
		return nil, verrors.Config("control", verrors.ErrUnknownControl, "%q", iconID)
	}
	opts, err := ParseOptions(iconID, raw)
	if err != nil {
		return nil, err
	}
	return factory(deps, opts), nil
}
