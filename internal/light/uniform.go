package light

import "github.com/go-gl/mathgl/mgl64"

// Stride is the number of floats one light occupies in a uniform buffer:
// position, direction, color and misc as four vec4 with the type in misc.w.
const Stride = 16

// Write packs l into dst, which must hold at least Stride floats.
func (l Light) Write(dst []float32) {
	_ = dst[Stride-1]
	putVec4(dst[0:4], l.Position.Vec4(0))
	putVec4(dst[4:8], l.Direction.Vec4(0))
	putVec4(dst[8:12], l.Color)
	misc := l.Misc
	misc[3] = float64(l.Type)
	putVec4(dst[12:16], misc)
}

// Read unpacks a light written by Write.
func Read(src []float32) Light {
	_ = src[Stride-1]
	misc := getVec4(src[12:16])
	t := Type(int(misc[3]))
	misc[3] = 0
	return Light{
		Position:  getVec4(src[0:4]).Vec3(),
		Direction: getVec4(src[4:8]).Vec3(),
		Color:     getVec4(src[8:12]),
		Misc:      misc,
		Type:      t,
	}
}

// Uniform packs the whole list into MaxLights*Stride floats.
func (l List) Uniform() []float32 {
	buf := make([]float32, MaxLights*Stride)
	for i, lt := range l {
		lt.Write(buf[i*Stride:])
	}
	return buf
}

// ReadList unpacks a buffer produced by List.Uniform.
func ReadList(src []float32) List {
	var l List
	for i := range l {
		l[i] = Read(src[i*Stride:])
	}
	return l
}

func putVec4(dst []float32, v mgl64.Vec4) {
	for i := range 4 {
		dst[i] = float32(v[i])
	}
}

func getVec4(src []float32) mgl64.Vec4 {
	return mgl64.Vec4{float64(src[0]), float64(src[1]), float64(src[2]), float64(src[3])}
}
