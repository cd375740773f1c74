package templates

import "sync"

// Built-in template names.
const (
	PCLive     = "pcLive"
	PCRec      = "pcRec"
	MobileLive = "mobileLive"
	MobileRec  = "mobileRec"
	Security   = "security"
	Voice      = "voice"
)

var order = []string{PCLive, PCRec, MobileLive, MobileRec, Security, Voice}

func onLeft(ids ...string) []Item  { return itemsOf(PartLeft, ids) }
func onRight(ids ...string) []Item { return itemsOf(PartRight, ids) }

func itemsOf(part string, ids []string) []Item {
	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = Item{IconID: id, Part: part}
	}
	return out
}

func barOf(parts ...[]Item) Bar {
	var b Bar
	for _, p := range parts {
		b.Items = append(b.Items, p...)
	}
	return b
}

// named is built once and never mutated; Named hands out copies.
var named = sync.OnceValue(func() map[string]*Data {
	return map[string]*Data{
		PCLive: {
			Header: barOf(onLeft("deviceID", "deviceName")),
			Footer: barOf(
				onLeft("play", "capturePicture", "sound", "talk", "recordvideo", "ptz", "zoom"),
				onRight("definition", "webExpend", "expend"),
			),
		},
		PCRec: {
			Header: barOf(onLeft("deviceID", "deviceName"), onRight("rec", "cloudRec")),
			Footer: barOf(
				onLeft("play", "capturePicture", "sound", "progress", "speed", "recordvideo", "zoom"),
				onRight("datePicker", "webExpend", "expend"),
			),
		},
		MobileLive: {
			Header: barOf(onLeft("deviceName")),
			Footer: barOf(
				onLeft("play", "sound", "capturePicture", "talk"),
				onRight("definition", "expend"),
			),
		},
		MobileRec: {
			Header: barOf(onLeft("deviceName"), onRight("rec", "cloudRecord")),
			Footer: barOf(
				onLeft("play", "sound", "progress", "speed"),
				onRight("datePicker", "expend"),
			),
		},
		Security: {
			Header: barOf(onLeft("deviceID", "deviceName")),
			Footer: barOf(
				onLeft("play", "capturePicture", "recordvideo", "ptz", "zoom"),
				onRight("expend"),
			),
		},
		Voice: {
			Header: barOf(onLeft("deviceName")),
			Footer: barOf(onLeft("talk", "sound")),
		},
	}
})

// Named returns a copy of the built-in template name.
func Named(name string) (*Data, bool) {
	d, ok := named()[name]
	if !ok {
		return nil, false
	}
	out := d.Clone()
	out.Name = name
	return out, true
}

// Names lists the built-in templates.
func Names() []string {
	return append([]string(nil), order...)
}

// DefaultName is the template used when none is configured.
func DefaultName(mobile bool) string {
	if mobile {
		return MobileLive
	}
	return PCLive
}
