// Package fog computes distance fog factors.
package fog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"glib-shading/internal/mathutil"
)

// Linear ramps from 0 at start to 1 at end. end must be greater than start;
// a degenerate range is clamped to mathutil.Epsilon.
func Linear(start, end, dist float64) float64 {
	return mathutil.Clamp01((dist - start) / mathutil.SafeDenom(end-start))
}

// Smooth is the Hermite version of Linear.
func Smooth(start, end, dist float64) float64 {
	return mathutil.Smoothstep(start, end, dist)
}

// Exp is the visibility 1/e^(dist*density), in (0, 1] for non-negative input.
func Exp(dist, density float64) float64 {
	return 1 / math.Exp(dist*density)
}

// Exp2 is the visibility 1/e^((dist*density)^2).
func Exp2(dist, density float64) float64 {
	d := dist * density
	return 1 / math.Exp(d*d)
}

// Mode selects the fog function. The values match the fog type stored in
// the w component of the fog parameter uniform; Smooth is an addition.
type Mode int

const (
	Off Mode = iota
	ModeExp
	ModeExp2
	ModeLinear
	ModeSmooth
)

var ErrUnknownMode = errors.New("fog: unknown mode")

var modeNames = [...]string{"off", "exp", "exp2", "linear", "smooth"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the names returned by String. The empty string is Off.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Off, nil
	}
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), nil
		}
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Params configures distance fog.
type Params struct {
	Start   float64
	End     float64
	Density float64
	Mode    Mode
}

// Vec4 returns the packed uniform [start, end, density, mode].
func (p Params) Vec4() mgl64.Vec4 {
	return mgl64.Vec4{p.Start, p.End, p.Density, float64(p.Mode)}
}

// ParamsFromVec4 unpacks a uniform written by Vec4.
func ParamsFromVec4(v mgl64.Vec4) Params {
	return Params{Start: v[0], End: v[1], Density: v[2], Mode: Mode(int(v[3]))}
}

// Amount returns how much fog covers a point at distance dist, 0 meaning
// clear and 1 fully fogged. The exponential functions return visibility, so
// they are inverted here.
func (p Params) Amount(dist float64) float64 {
	switch p.Mode {
	case ModeExp:
		return 1 - Exp(dist, p.Density)
	case ModeExp2:
		return 1 - Exp2(dist, p.Density)
	case ModeLinear:
		return Linear(p.Start, p.End, dist)
	case ModeSmooth:
		return Smooth(p.Start, p.End, dist)
	}
	return 0
}

// Apply blends color toward fogColor by amount.
func Apply(color, fogColor mgl64.Vec3, amount float64) mgl64.Vec3 {
	return mathutil.MixVec3(color, fogColor, mathutil.Clamp01(amount))
}
