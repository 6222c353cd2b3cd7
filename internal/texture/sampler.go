package texture

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Sampler returns the RGBA value of a texture at uv, each channel in [0, 1].
type Sampler interface {
	Sample(uv mgl64.Vec2) mgl64.Vec4
}

// Filter selects the addressing and filtering mode of an Image sampler.
// The names match the @filter values of the binding metadata.
type Filter int

const (
	LinearWrap Filter = iota
	LinearClamp
	PointWrap
	PointClamp
)

var ErrUnknownFilter = errors.New("texture: unknown filter")

var filterNames = [...]string{"LinearWrap", "LinearClamp", "PointWrap", "PointClamp"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter accepts the filter names case-insensitively. The empty string
// means LinearWrap.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return LinearWrap, nil
	}
	for i, name := range filterNames {
		if strings.EqualFold(name, s) {
			return Filter(i), nil
		}
	}
	return LinearWrap, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

func (f Filter) linear() bool { return f == LinearWrap || f == LinearClamp }
func (f Filter) wrap() bool   { return f == LinearWrap || f == PointWrap }

// Image samples an NRGBA image. Pix is accessed directly; no allocation per
// sample.
type Image struct {
	Img    *image.NRGBA
	Filter Filter
}

// NewImage wraps img with the LinearWrap filter.
func NewImage(img *image.NRGBA) *Image {
	return &Image{Img: img}
}

func (s *Image) Sample(uv mgl64.Vec2) mgl64.Vec4 {
	if s == nil || s.Img == nil {
		return mgl64.Vec4{}
	}
	w := s.Img.Rect.Dx()
	h := s.Img.Rect.Dy()
	if w == 0 || h == 0 {
		return mgl64.Vec4{}
	}

	u, v := address(uv[0], s.Filter.wrap()), address(uv[1], s.Filter.wrap())

	if !s.Filter.linear() {
		x := min(int(u*float64(w)), w-1)
		y := min(int(v*float64(h)), h-1)
		return s.texel(x, y)
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1, y1 := x0+1, y0+1
	if s.Filter.wrap() {
		x1 %= w
		y1 %= h
	} else {
		x1 = min(x1, w-1)
		y1 = min(y1, h-1)
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	c00 := s.texel(x0, y0)
	c10 := s.texel(x1, y0)
	c01 := s.texel(x0, y1)
	c11 := s.texel(x1, y1)

	return c00.Mul((1 - dx) * (1 - dy)).
		Add(c10.Mul(dx * (1 - dy))).
		Add(c01.Mul((1 - dx) * dy)).
		Add(c11.Mul(dx * dy))
}

func (s *Image) texel(x, y int) mgl64.Vec4 {
	i := y*s.Img.Stride + x*4
	p := s.Img.Pix[i : i+4 : i+4]
	return mgl64.Vec4{
		float64(p[0]) / 255,
		float64(p[1]) / 255,
		float64(p[2]) / 255,
		float64(p[3]) / 255,
	}
}

// address maps a texture coordinate into [0, 1].
func address(c float64, wrap bool) float64 {
	if wrap {
		c -= math.Floor(c)
		if c >= 1 {
			c = 0
		}
		return c
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Constant is a sampler returning the same color everywhere.
type Constant mgl64.Vec4

func (c Constant) Sample(mgl64.Vec2) mgl64.Vec4 { return mgl64.Vec4(c) }

// ScaleOffset transforms texture coordinates as uv*(x, y) + (z, w), the
// layout of the *MapScaleOffset uniforms. A zero scale component stands for
// 1, so the zero value leaves coordinates unchanged.
type ScaleOffset mgl64.Vec4

// IdentityScaleOffset is the explicit form of the zero ScaleOffset.
var IdentityScaleOffset = ScaleOffset{1, 1, 0, 0}

// Apply transforms uv.
func (so ScaleOffset) Apply(uv mgl64.Vec2) mgl64.Vec2 {
	sx, sy := so[0], so[1]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return mgl64.Vec2{uv[0]*sx + so[2], uv[1]*sy + so[3]}
}

// Func adapts a plain function to the Sampler interface.
type Func func(uv mgl64.Vec2) mgl64.Vec4

func (f Func) Sample(uv mgl64.Vec2) mgl64.Vec4 { return f(uv) }
