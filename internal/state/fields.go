package state

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"

	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
)

// Field names one ThemeState property. The string is the wire name used by
// player-state documents.
type Field string

const (
	FieldWidth               Field = "width"
	FieldHeight              Field = "height"
	FieldPlaying             Field = "playing"
	FieldVolume              Field = "volume"
	FieldMuted               Field = "muted"
	FieldLoading             Field = "loading"
	FieldRecType             Field = "recType"
	FieldIsCurrentFullscreen Field = "isCurrentFullscreen"
	FieldOrientationAngle    Field = "orientationAngle"
	FieldZooming             Field = "zooming"
	FieldZoom                Field = "zoom"
	FieldRecording           Field = "recording"
	FieldTalking             Field = "talking"
	FieldRecordList          Field = "recordList"
	FieldSpeed               Field = "speed"
	FieldURLInfo             Field = "urlInfo"
	FieldVideoLevelList      Field = "videoLevelList"
	FieldVideoLevel          Field = "videoLevel"
	FieldRecMonth            Field = "recMonth"
)

type fieldSpec struct {
	event  events.Name
	get    func(*Theme) any
	set    func(*Theme, any) (bool, error)
	decode func(json.RawMessage) (any, error)
}

var order = []Field{
	FieldWidth, FieldHeight, FieldPlaying, FieldVolume, FieldMuted, FieldLoading,
	FieldRecType, FieldIsCurrentFullscreen, FieldOrientationAngle, FieldZooming,
	FieldZoom, FieldRecording, FieldTalking, FieldRecordList, FieldSpeed,
	FieldURLInfo, FieldVideoLevelList, FieldVideoLevel, FieldRecMonth,
}

var registry = map[Field]fieldSpec{
	FieldWidth:               field(events.WidthChange, func(t *Theme) *int { return &t.Width }, nonNegative),
	FieldHeight:              field(events.HeightChange, func(t *Theme) *int { return &t.Height }, nonNegative),
	FieldPlaying:             field(events.Play, func(t *Theme) *bool { return &t.Playing }, nil),
	FieldVolume:              field(events.VolumeChange, func(t *Theme) *float64 { return &t.Volume }, unitInterval),
	FieldMuted:               field(events.MutedChange, func(t *Theme) *bool { return &t.Muted }, nil),
	FieldLoading:             field(events.Loading, func(t *Theme) *bool { return &t.Loading }, nil),
	FieldRecType:             field(events.RecTypeChange, func(t *Theme) *string { return &t.RecType }, recType),
	FieldIsCurrentFullscreen: field(events.FullscreenChange, func(t *Theme) *bool { return &t.IsCurrentFullscreen }, nil),
	FieldOrientationAngle:    field(events.OrientationChange, func(t *Theme) *int { return &t.OrientationAngle }, rightAngle),
	FieldZooming:             field(events.ZoomingChange, func(t *Theme) *bool { return &t.Zooming }, nil),
	FieldZoom:                field(events.ZoomChange, func(t *Theme) *float64 { return &t.Zoom }, zoomFactor),
	FieldRecording:           field(events.RecordingChange, func(t *Theme) *bool { return &t.Recording }, nil),
	FieldTalking:             field(events.TalkingChange, func(t *Theme) *bool { return &t.Talking }, nil),
	FieldRecordList:          field(events.RecordListChange, func(t *Theme) *[]Record { return &t.RecordList }, nil),
	FieldSpeed:               field(events.SpeedChange, func(t *Theme) *float64 { return &t.Speed }, positive),
	FieldURLInfo:             field(events.URLInfoChange, func(t *Theme) *URLInfo { return &t.URLInfo }, nil),
	FieldVideoLevelList:      field(events.VideoLevelListChange, func(t *Theme) *[]VideoLevel { return &t.VideoLevelList }, nil),
	FieldVideoLevel:          field(events.DefinitionChange, func(t *Theme) *int { return &t.VideoLevel }, nonNegative),
	FieldRecMonth:            field(events.RecMonthChange, func(t *Theme) *string { return &t.RecMonth }, nil),
}

func field[T any](ev events.Name, ptr func(*Theme) *T, validate func(T) error) fieldSpec {
	return fieldSpec{
		event: ev,
		get:   func(t *Theme) any { return *ptr(t) },
		set: func(t *Theme, v any) (bool, error) {
			val, ok := coerce[T](v)
			if !ok {
				var zero T
				return false, verrors.Config("set", verrors.ErrInvalidValue, "%s wants %T, got %T", ev, zero, v)
			}
			if validate != nil {
				if err := validate(val); err != nil {
					return false, verrors.Config("set", verrors.ErrInvalidValue, "%s: %v", ev, err)
				}
			}
			dst := ptr(t)
			if reflect.DeepEqual(*dst, val) {
				return false, nil
			}
			*dst = val
			return true, nil
		},
		decode: func(raw json.RawMessage) (any, error) {
			var val T
			if err := json.Unmarshal(raw, &val); err != nil {
				return nil, err
			}
			return val, nil
		},
	}
}

// coerce accepts the exact type plus the numeric shapes produced by JSON,
// TOML and untyped constants.
func coerce[T any](v any) (T, bool) {
	if val, ok := v.(T); ok {
		return val, true
	}
	var zero T
	switch any(zero).(type) {
	case int:
		switch n := v.(type) {
		case int64:
			return any(int(n)).(T), true
		case int32:
			return any(int(n)).(T), true
		case float64:
			if n == math.Trunc(n) {
				return any(int(n)).(T), true
			}
		}
	case float64:
		switch n := v.(type) {
		case int:
			return any(float64(n)).(T), true
		case int64:
			return any(float64(n)).(T), true
		case float32:
			return any(float64(n)).(T), true
		}
	}
	return zero, false
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("%d is negative", n)
	}
	return nil
}

func unitInterval(f float64) error {
	if f < 0 || f > 1 || math.IsNaN(f) {
		return fmt.Errorf("%v outside [0,1]", f)
	}
	return nil
}

func positive(f float64) error {
	if !(f > 0) {
		return fmt.Errorf("%v is not positive", f)
	}
	return nil
}

func zoomFactor(f float64) error {
	if !(f >= 1) {
		return fmt.Errorf("zoom %v below 1", f)
	}
	return nil
}

func rightAngle(n int) error {
	switch n {
	case 0, 90, 180, 270:
		return nil
	}
	return fmt.Errorf("angle %d not in {0,90,180,270}", n)
}

func recType(s string) error {
	switch s {
	case "", "rec", "cloudRec", "cloudRecord":
		return nil
	}
	return fmt.Errorf("record type %q", s)
}

// Fields returns every field in declaration order.
func Fields() []Field {
	return append([]Field(nil), order...)
}

// EventOf returns the event emitted when f changes.
func EventOf(f Field) (events.Name, bool) {
	def, ok := registry[f]
	return def.event, ok
}

// Known reports whether f is a ThemeState field.
func Known(f Field) bool {
	_, ok := registry[f]
	return ok
}

// Patch is a partial ThemeState keyed by field.
type Patch map[Field]any

// Validate rejects unknown fields, listing all of them.
func (p Patch) Validate() error {
	var unknown []string
	for f := range p {
		if !Known(f) {
			unknown = append(unknown, string(f))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return verrors.Config("patch", verrors.ErrUnknownField, "%v", unknown)
}

// Clone returns a shallow copy of the map.
func (p Patch) Clone() Patch {
	if p == nil {
		return nil
	}
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has reports whether p mentions f.
func (p Patch) Has(f Field) bool {
	_, ok := p[f]
	return ok
}

// DecodePatch parses a JSON object into a typed Patch. Unknown keys are an
// error.
func DecodePatch(data []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	p := make(Patch, len(raw))
	var unknown []string
	for key, msg := range raw {
		def, ok := registry[Field(key)]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		v, err := def.decode(msg)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		p[Field(key)] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, verrors.Config("decode patch", verrors.ErrUnknownField, "%v", unknown)
	}
	return p, nil
}
