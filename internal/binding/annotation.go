package binding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Annotation is the editor metadata attached to a declaration. It has no
// effect on shading.
type Annotation struct {
	// Binding is the semantic name the host binds values to.
	Binding string `yaml:"binding,omitempty" json:"binding,omitempty"`
	// Widget is the editor hint: color, direction, number or range(min, max).
	Widget string `yaml:"widget,omitempty" json:"widget,omitempty"`
	// Default is the value shown before the user edits it.
	Default any `yaml:"default,omitempty" json:"default,omitempty"`
	// Register is the texture slot of samplers.
	Register *int `yaml:"register,omitempty" json:"register,omitempty"`
	// Filter is the sampler state name of textures, e.g. LinearWrap.
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`
	// Extra keeps keys this package does not interpret.
	Extra map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// WidgetKind is the editor control of a uniform.
type WidgetKind string

const (
	WidgetNone      WidgetKind = ""
	WidgetColor     WidgetKind = "color"
	WidgetDirection WidgetKind = "direction"
	WidgetNumber    WidgetKind = "number"
	WidgetRange     WidgetKind = "range"
)

// Widget is a parsed widget hint. Min and Max are only set for ranges.
type Widget struct {
	Kind WidgetKind
	Min  float64
	Max  float64
}

var ErrBadWidget = errors.New("binding: bad widget")

// ParseWidget parses "color", "direction", "number" and "range(min, max)".
func ParseWidget(s string) (Widget, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return Widget{}, nil
	case "color":
		return Widget{Kind: WidgetColor}, nil
	case "direction":
		return Widget{Kind: WidgetDirection}, nil
	case "number":
		return Widget{Kind: WidgetNumber}, nil
	}

	args, ok := strings.CutPrefix(strings.ToLower(s), "range(")
	if !ok || !strings.HasSuffix(args, ")") {
		return Widget{}, fmt.Errorf("%w: %q", ErrBadWidget, s)
	}
	lo, hi, ok := strings.Cut(strings.TrimSuffix(args, ")"), ",")
	if !ok {
		return Widget{}, fmt.Errorf("%w: %q needs two bounds", ErrBadWidget, s)
	}
	minV, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Widget{}, fmt.Errorf("%w: %q: %v", ErrBadWidget, s, err)
	}
	maxV, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Widget{}, fmt.Errorf("%w: %q: %v", ErrBadWidget, s, err)
	}
	return Widget{Kind: WidgetRange, Min: minV, Max: maxV}, nil
}

// Floats returns the default value as a float slice. Scalars become a one
// element slice.
func (a Annotation) Floats() ([]float64, bool) {
	switch v := a.Default.(type) {
	case int:
		return []float64{float64(v)}, true
	case float64:
		return []float64{v}, true
	case []any:
		out := make([]float64, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case int:
				out = append(out, float64(n))
			case float64:
				out = append(out, n)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}
