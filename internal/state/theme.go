package state

import (
	"fmt"
	"time"

	verrors "github.com/five82/vista/internal/errors"
)

// Record is one recording segment shown on the time line.
type Record struct {
	Start time.Time `json:"start" toml:"start"`
	End   time.Time `json:"end" toml:"end"`
	Type  string    `json:"type,omitempty" toml:"type"`
}

// URLInfo describes the stream the player is showing.
type URLInfo struct {
	URL          string `json:"url"`
	Type         string `json:"type"` // live, rec, cloud.rec
	DeviceSerial string `json:"deviceSerial"`
	DeviceName   string `json:"deviceName"`
	Channel      int    `json:"channel"`
	HD           bool   `json:"hd"`
}

// VideoLevel is one selectable definition.
type VideoLevel struct {
	Level      int    `json:"level"`
	Name       string `json:"name"`
	StreamType int    `json:"streamType"`
}

// Theme is the shared player-state snapshot owned by the coordinator.
// Controls read it; only the coordinator writes it.
type Theme struct {
	Width               int
	Height              int
	Playing             bool
	Volume              float64
	Muted               bool
	Loading             bool
	RecType             string
	IsCurrentFullscreen bool
	OrientationAngle    int
	Zooming             bool
	Zoom                float64
	Recording           bool
	Talking             bool
	RecordList          []Record
	Speed               float64
	URLInfo             URLInfo
	VideoLevelList      []VideoLevel
	VideoLevel          int
	RecMonth            string
}

// Defaults returns the state every coordinator starts from.
func Defaults() Theme {
	return Theme{
		Volume:     1,
		Zoom:       1,
		Speed:      1,
		RecType:    "",
		VideoLevel: 0,
	}
}

// Clone returns a deep copy.
func (t Theme) Clone() Theme {
	out := t
	if t.RecordList != nil {
		out.RecordList = append([]Record(nil), t.RecordList...)
	}
	if t.VideoLevelList != nil {
		out.VideoLevelList = append([]VideoLevel(nil), t.VideoLevelList...)
	}
	return out
}

// Get returns the value of field f.
func (t *Theme) Get(f Field) (any, error) {
	def, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", f, verrors.ErrUnknownField)
	}
	return def.get(t), nil
}

// Set assigns v to field f after coercing and validating it. It reports
// whether the stored value changed.
func (t *Theme) Set(f Field, v any) (bool, error) {
	def, ok := registry[f]
	if !ok {
		return false, verrors.Config("set", verrors.ErrUnknownField, "%q", f)
	}
	return def.set(t, v)
}

// Apply sets every field of p in declaration order and returns the fields
// that changed. Unknown fields are rejected before anything is written.
func (t *Theme) Apply(p Patch) ([]Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	next := t.Clone()
	var changed []Field
	for _, f := range order {
		v, ok := p[f]
		if !ok {
			continue
		}
		did, err := next.Set(f, v)
		if err != nil {
			return nil, err
		}
		if did {
			changed = append(changed, f)
		}
	}
	*t = next
	return changed, nil
}
