package render

import (
	"github.com/chewxy/math32"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// SampleBilinear samples an RGBA8 texture at (u, v) with bilinear filtering.
// When repeat is true the coordinates wrap modulo 1, otherwise they clamp to
// [0,1]. When srgb is true the RGB channels (not alpha) are decoded to
// linear with pow(c, 2.2). Texture sampling always works in float32.
func SampleBilinear(t *scene.Texture, u, v float32, repeat, srgb bool) math3d.Vec4[float32] {
	if repeat {
		u = u - math32.Floor(u)
		v = v - math32.Floor(v)
	}
	u = clamp32(u, 0, 1)
	v = clamp32(v, 0, 1)

	// Pixel-center coordinates.
	x := u*float32(t.Width) - 0.5
	y := v*float32(t.Height) - 0.5

	x0 := int(math32.Floor(x))
	y0 := int(math32.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	xFrac := x - float32(x0)
	yFrac := y - float32(y0)

	x0 = clampInt(x0, 0, t.Width-1)
	x1 = clampInt(x1, 0, t.Width-1)
	y0 = clampInt(y0, 0, t.Height-1)
	y1 = clampInt(y1, 0, t.Height-1)

	c00 := texelAt(t, x0, y0)
	c10 := texelAt(t, x1, y0)
	c01 := texelAt(t, x0, y1)
	c11 := texelAt(t, x1, y1)

	result := c00.Lerp(c10, xFrac).Lerp(c01.Lerp(c11, xFrac), yFrac)

	if srgb {
		result.X = math32.Pow(result.X, 2.2)
		result.Y = math32.Pow(result.Y, 2.2)
		result.Z = math32.Pow(result.Z, 2.2)
	}
	return result
}

// texelAt fetches one RGBA8 texel as four floats in [0,1].
func texelAt(t *scene.Texture, x, y int) math3d.Vec4[float32] {
	i := (y*t.Width + x) * 4
	return math3d.V4(
		float32(t.Pix[i+0])/255,
		float32(t.Pix[i+1])/255,
		float32(t.Pix[i+2])/255,
		float32(t.Pix[i+3])/255,
	)
}

func clamp32(x, lo, hi float32) float32 {
	return math32.Min(math32.Max(x, lo), hi)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
