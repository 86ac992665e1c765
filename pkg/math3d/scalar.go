// Package math3d provides the 3D math kernel for the prism rasterizer.
// All types are generic over float32 and float64 so the pipeline can run in
// either precision with identical semantics.
package math3d

import "math"

// Float is the scalar constraint for every generic type in this package.
type Float interface {
	~float32 | ~float64
}

// UVec2 is an unsigned 2D vector, used for pixel resolutions.
type UVec2 struct {
	X, Y uint32
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

// Tan returns the tangent of x (radians).
func Tan[T Float](x T) T {
	return T(math.Tan(float64(x)))
}

// Cos returns the cosine of x (radians).
func Cos[T Float](x T) T {
	return T(math.Cos(float64(x)))
}

// Sin returns the sine of x (radians).
func Sin[T Float](x T) T {
	return T(math.Sin(float64(x)))
}

// Pow returns x**y.
func Pow[T Float](x, y T) T {
	return T(math.Pow(float64(x), float64(y)))
}

// Exp returns e**x.
func Exp[T Float](x T) T {
	return T(math.Exp(float64(x)))
}

// Log returns the natural logarithm of x.
func Log[T Float](x T) T {
	return T(math.Log(float64(x)))
}

// Floor returns the largest integer value <= x.
func Floor[T Float](x T) T {
	return T(math.Floor(float64(x)))
}

// Ceil returns the smallest integer value >= x.
func Ceil[T Float](x T) T {
	return T(math.Ceil(float64(x)))
}

// Abs returns the absolute value of x.
func Abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to the range [lo, hi].
func Clamp[T Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Radians converts degrees to radians.
func Radians[T Float](deg T) T {
	return deg * T(math.Pi) / 180
}

// Lerp returns the linear interpolation between a and b by t.
func Lerp[T Float](a, b, t T) T {
	return a + (b-a)*t
}
