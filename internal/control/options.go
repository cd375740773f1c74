package control

import (
	"fmt"
	"sort"

	verrors "github.com/five82/vista/internal/errors"
)

// Options is the validated option set of one control.
//
//	option   type       controls      effect
//	label    string     all           overrides the translated label
//	pinned   bool       all           never moved into the More panel
//	step     float      sound, zoom   increment per up/down or in/out action
//	speeds   []float    speed         selectable playback speeds, each > 0
//	min/max  float      progress      seek range, min < max
//
// Keys a control does not recognize are kept verbatim in Extra.
type Options struct {
	Label  string
	Pinned bool
	Step   float64
	Speeds []float64
	Min    float64
	Max    float64
	Extra  map[string]any
}

var defaultSpeeds = []float64{0.5, 1, 1.5, 2}

func defaults(iconID string) Options {
	o := Options{}
	switch iconID {
	case IconSound:
		o.Step = 0.1
	case IconZoom:
		o.Step = 0.5
	case IconSpeed:
		o.Speeds = append([]float64(nil), defaultSpeeds...)
	case IconProgress:
		o.Min, o.Max = 0, 1
	case IconTimeLine:
		o.Min, o.Max = 0, 24*60*60
	}
	return o
}

// ParseOptions validates raw against the option table for iconID.
func ParseOptions(iconID string, raw map[string]any) (Options, error) {
	o := defaults(iconID)
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := raw[k]
		var err error
		switch {
		case k == "label":
			s, ok := v.(string)
			if !ok {
				err = typeError(k, "string", v)
			}
			o.Label = s
		case k == "pinned":
			b, ok := v.(bool)
			if !ok {
				err = typeError(k, "bool", v)
			}
			o.Pinned = b
		case k == "step" && (iconID == IconSound || iconID == IconZoom):
			o.Step, err = parseStep(iconID, v)
		case k == "speeds" && iconID == IconSpeed:
			o.Speeds, err = parseSpeeds(v)
		case (k == "min" || k == "max") && iconID == IconProgress:
			f, ok := toFloat(v)
			if !ok {
				err = typeError(k, "number", v)
			} else if k == "min" {
				o.Min = f
			} else {
				o.Max = f
			}
		default:
			if o.Extra == nil {
				o.Extra = make(map[string]any)
			}
			o.Extra[k] = v
		}
		if err != nil {
			return Options{}, verrors.Config("options", verrors.ErrInvalidValue, "%s.%s: %v", iconID, k, err)
		}
	}

	if o.Min >= o.Max && (iconID == IconProgress || iconID == IconTimeLine) {
		return Options{}, verrors.Config("options", verrors.ErrInvalidRange, "%s: min %v must be below max %v", iconID, o.Min, o.Max)
	}
	return o, nil
}

func parseStep(iconID string, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, typeError("step", "number", v)
	}
	if f <= 0 || (iconID == IconSound && f > 1) {
		return 0, fmt.Errorf("step %v out of range", f)
	}
	return f, nil
}

func parseSpeeds(v any) ([]float64, error) {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []float64:
		for _, f := range list {
			items = append(items, f)
		}
	default:
		return nil, typeError("speeds", "list of numbers", v)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("speeds is empty")
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, typeError("speeds", "list of numbers", v)
		}
		if f <= 0 {
			return nil, fmt.Errorf("speed %v must be positive", f)
		}
		out = append(out, f)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("%s wants %s, got %T", key, want, got)
}
