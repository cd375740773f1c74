// Package templates describes which controls appear in the header and
// footer bars, and in which region.
package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	verrors "github.com/five82/vista/internal/errors"
)

// Regions of a bar.
const (
	PartLeft  = "left"
	PartRight = "right"
)

// Item declares one control. Declaration order is priority order.
type Item struct {
	IconID  string         `toml:"iconId" yaml:"iconId"`
	Part    string         `toml:"part,omitempty" yaml:"part,omitempty"`
	Options map[string]any `toml:"options,omitempty" yaml:"options,omitempty"`
}

// Bar lists the items of one bar.
type Bar struct {
	Items []Item `toml:"items" yaml:"items"`
}

// Data is a complete template. It is immutable once handed to a
// coordinator; the coordinator keeps its own copy.
type Data struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`
	// Base names a built-in template used when both bars are empty.
	Base   string `toml:"base,omitempty" yaml:"base,omitempty"`
	Header Bar    `toml:"header" yaml:"header"`
	Footer Bar    `toml:"footer" yaml:"footer"`
}

// Empty reports whether neither bar declares a control.
func (d *Data) Empty() bool {
	return len(d.Header.Items) == 0 && len(d.Footer.Items) == 0
}

// Clone returns a deep copy.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := *d
	out.Header.Items = cloneItems(d.Header.Items)
	out.Footer.Items = cloneItems(d.Footer.Items)
	return &out
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.Options != nil {
			out[i].Options = make(map[string]any, len(it.Options))
			for k, v := range it.Options {
				out[i].Options[k] = v
			}
		}
	}
	return out
}

// Resolve expands Base into a full template when the bars are empty.
func (d *Data) Resolve() (*Data, error) {
	if !d.Empty() || d.Base == "" {
		return d.Clone(), nil
	}
	base, ok := Named(d.Base)
	if !ok {
		return nil, verrors.Config("template", verrors.ErrInvalidValue, "unknown base template %q", d.Base)
	}
	if d.Name != "" {
		base.Name = d.Name
	}
	return base, nil
}

// Reserved icon ids are owned by the coordinator and cannot be declared.
var reserved = map[string]bool{"more": true, "message": true}

// Validate checks parts, reserved ids and duplicates across the whole
// template. known, when non-nil, rejects unknown icon ids.
func (d *Data) Validate(known func(iconID string) bool) error {
	seen := make(map[string]string)
	for _, bar := range []struct {
		name  string
		items []Item
	}{{"header", d.Header.Items}, {"footer", d.Footer.Items}} {
		for _, it := range bar.items {
			switch {
			case it.IconID == "":
				return verrors.Config("template", verrors.ErrInvalidValue, "%s: item without iconId", bar.name)
			case reserved[it.IconID]:
				return verrors.Config("template", verrors.ErrInvalidValue, "%s: %q is reserved", bar.name, it.IconID)
			case it.Part != "" && it.Part != PartLeft && it.Part != PartRight:
				return verrors.Config("template", verrors.ErrInvalidValue, "%s.%s: part %q", bar.name, it.IconID, it.Part)
			case known != nil && !known(it.IconID):
				return verrors.Config("template", verrors.ErrUnknownControl, "%s: %q", bar.name, it.IconID)
			}
			if prev, dup := seen[it.IconID]; dup {
				return verrors.Config("template", verrors.ErrDuplicateControl, "%q in %s and %s", it.IconID, prev, bar.name)
			}
			seen[it.IconID] = bar.name
		}
	}
	return nil
}

// Format of a template document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", verrors.Config("template", verrors.ErrUnsupported, "unknown template format %q", filepath.Ext(path))
}

// Parse decodes a template document.
func Parse(data []byte, format Format) (*Data, error) {
	var d Data
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, verrors.Config("template", err, "parse toml")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, verrors.Config("template", err, "parse yaml")
		}
	default:
		return nil, verrors.Config("template", verrors.ErrUnsupported, "format %q", format)
	}
	return &d, nil
}

// Load reads and resolves a template file.
func Load(path string) (*Data, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d.Resolve()
}
