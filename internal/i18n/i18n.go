// Package i18n maps label keys to display strings per language.
package i18n

import (
	"sync"

	"golang.org/x/text/language"
)

// Translator resolves a key for a language. Unknown keys return the key.
type Translator interface {
	Text(key, lang string) string
}

// Label keys used by controls and the message toast.
const (
	KeyPlay           = "play"
	KeyPause          = "pause"
	KeyCapturePicture = "capturePicture"
	KeySound          = "sound"
	KeyMute           = "mute"
	KeyPTZ            = "ptz"
	KeyRecordVideo    = "recordvideo"
	KeyTalk           = "talk"
	KeyZoom           = "zoom"
	KeyDefinition     = "definition"
	KeySpeed          = "speed"
	KeyWebExpend      = "webExpend"
	KeyExpend         = "expend"
	KeyExitExpend     = "exitExpend"
	KeyRec            = "rec"
	KeyCloudRec       = "cloudRec"
	KeyCloudRecord    = "cloudRecord"
	KeyDatePicker     = "datePicker"
	KeyTimeLine       = "timeLine"
	KeyProgress       = "progress"
	KeyMore           = "more"
	KeyDeviceID       = "deviceID"
	KeyDeviceName     = "deviceName"
	KeyLoading        = "loading"
	KeyOffline        = "offline"
	KeyFullscreenFail = "fullscreenFailed"
)

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var tables = map[language.Tag]map[string]string{
	language.English: {
		KeyPlay:           "Play",
		KeyPause:          "Pause",
		KeyCapturePicture: "Snapshot",
		KeySound:          "Volume",
		KeyMute:           "Muted",
		KeyPTZ:            "PTZ",
		KeyRecordVideo:    "Record",
		KeyTalk:           "Talk",
		KeyZoom:           "Zoom",
		KeyDefinition:     "Quality",
		KeySpeed:          "Speed",
		KeyWebExpend:      "Window",
		KeyExpend:         "Fullscreen",
		KeyExitExpend:     "Exit fullscreen",
		KeyRec:            "Local",
		KeyCloudRec:       "Cloud",
		KeyCloudRecord:    "Cloud record",
		KeyDatePicker:     "Date",
		KeyTimeLine:       "Timeline",
		KeyProgress:       "Progress",
		KeyMore:           "More",
		KeyDeviceID:       "Serial",
		KeyDeviceName:     "Device",
		KeyLoading:        "Loading…",
		KeyOffline:        "Player offline",
		KeyFullscreenFail: "Fullscreen unavailable",
	},
	language.SimplifiedChinese: {
		KeyPlay:           "播放",
		KeyPause:          "暂停",
		KeyCapturePicture: "截图",
		KeySound:          "音量",
		KeyMute:           "静音",
		KeyPTZ:            "云台",
		KeyRecordVideo:    "录屏",
		KeyTalk:           "对讲",
		KeyZoom:           "电子放大",
		KeyDefinition:     "清晰度",
		KeySpeed:          "倍速",
		KeyWebExpend:      "网页全屏",
		KeyExpend:         "全屏",
		KeyExitExpend:     "退出全屏",
		KeyRec:            "本地",
		KeyCloudRec:       "云存储",
		KeyCloudRecord:    "云录制",
		KeyDatePicker:     "日期",
		KeyTimeLine:       "时间轴",
		KeyProgress:       "进度",
		KeyMore:           "更多",
		KeyDeviceID:       "序列号",
		KeyDeviceName:     "设备",
		KeyLoading:        "加载中…",
		KeyOffline:        "播放器离线",
		KeyFullscreenFail: "无法全屏",
	},
}

// Catalog is the built-in Translator. Tables are read-only after package
// initialization.
type Catalog struct {
	matcher language.Matcher

	mu    sync.Mutex
	cache map[string]language.Tag
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = &Catalog{
			matcher: language.NewMatcher(supported),
			cache:   make(map[string]language.Tag),
		}
	})
	return defaultCatalog
}

// Text returns the string for key in the closest supported language,
// falling back to English and then to the key itself.
func (c *Catalog) Text(key, lang string) string {
	if s, ok := tables[c.resolve(lang)][key]; ok {
		return s
	}
	if s, ok := tables[language.English][key]; ok {
		return s
	}
	return key
}

// Resolve returns the supported language tag chosen for lang.
func (c *Catalog) Resolve(lang string) string {
	return c.resolve(lang).String()
}

func (c *Catalog) resolve(lang string) language.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tag, ok := c.cache[lang]; ok {
		return tag
	}
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, conf := c.matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	c.cache[lang] = tag
	return tag
}

// Languages lists the supported language tags.
func Languages() []string {
	out := make([]string, len(supported))
	for i, tag := range supported {
		out[i] = tag.String()
	}
	return out
}
