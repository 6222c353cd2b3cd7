package light

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxLights is the number of light slots a shading program evaluates.
const MaxLights = 4

// List is a fixed set of light slots, passed by value.
//
// Slots are evaluated in order and evaluation stops at the first slot that is
// Off: lights placed after a gap are never seen.
type List [MaxLights]Light

// NewList places lights into consecutive slots in argument order. Off lights
// keep their slot, so anything after one is never evaluated. Passing more than
// MaxLights lights is an error.
func NewList(lights ...Light) (List, error) {
	var l List
	if len(lights) > MaxLights {
		return l, fmt.Errorf("light: %d light slots, at most %d supported", len(lights), MaxLights)
	}
	copy(l[:], lights)
	return l, nil
}

// Len returns the number of slots before the first Off slot.
func (l List) Len() int {
	for i, lt := range l {
		if !lt.Enabled() {
			return i
		}
	}
	return MaxLights
}

// Active returns the occupied slots before the first Off slot.
func (l List) Active() []Light {
	return l[:l.Len()]
}

// Each evaluates every active light at position, in slot order, and calls fn
// with the result. It returns early at the first Off slot or when fn returns
// false. Slots of an unknown type contribute nothing and are skipped.
func (l List) Each(position mgl64.Vec3, fn func(i int, in Incident) bool) {
	for i, lt := range l {
		in, ok := Evaluate(lt, position)
		if !ok {
			return
		}
		if lt.Type > Spot {
			continue
		}
		if !fn(i, in) {
			return
		}
	}
}
