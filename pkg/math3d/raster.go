package math3d

// Rasterization primitives: the signed edge function and screen-space
// barycentric coordinates.

// EdgeFunction returns the signed edge function of point p against the
// directed line a->b: (Bx-Ax)(Py-Ay) - (By-Ay)(Px-Ax). Positive on one side
// of the line, zero on it. For a triangle (a, b, c) it is twice the signed
// area when p = c.
func EdgeFunction[T Float](a, b, p Vec2[T]) T {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// Barycentric returns the barycentric weights (u, v, w) of point (px, py)
// against the screen-space triangle (a, b, c). The weights sum to 1; the
// point is inside the triangle iff all three are >= 0. Ties on edges count
// as inside.
func Barycentric[T Float](a, b, c Vec2[T], px, py T) Vec3[T] {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	u := ((b.Y-c.Y)*(px-c.X) + (c.X-b.X)*(py-c.Y)) / denom
	v := ((c.Y-a.Y)*(px-c.X) + (a.X-c.X)*(py-c.Y)) / denom
	return Vec3[T]{u, v, 1 - u - v}
}

// ReinhardToneMap maps each channel of c from [0, inf) to [0, 1) with
// c/(c+1).
func ReinhardToneMap[T Float](c Vec3[T]) Vec3[T] {
	return Vec3[T]{
		c.X / (c.X + 1),
		c.Y / (c.Y + 1),
		c.Z / (c.Z + 1),
	}
}

// GammaCorrect applies pow(c, 1/gamma) per channel.
func GammaCorrect[T Float](c Vec3[T], gamma T) Vec3[T] {
	return Vec3[T]{
		Pow(c.X, 1/gamma),
		Pow(c.Y, 1/gamma),
		Pow(c.Z, 1/gamma),
	}
}
