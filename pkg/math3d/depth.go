package math3d

// Depth encoding. Fragment depths are produced by interpolating the clip-space
// w of a triangle's vertices, then mapping into [0,1] with an inverted
// exponential: 0 is at the near plane and values approach 1 toward the far
// plane. Stored depths are compared with <=.

// LinearToExponentialInvertedZ maps a linear view-space depth in [near, far]
// to the inverted-exponential [0,1] encoding stored in the depth buffer.
func LinearToExponentialInvertedZ[T Float](linearZ, zNear, zFar T) T {
	normalized := (linearZ - zNear) / (zFar - zNear)
	return 1 - Exp(-normalized)
}

// ExponentialInvertedToLinearZ inverts LinearToExponentialInvertedZ, mapping
// an encoded depth back to linear view-space depth. Used for diagnostic
// export of the depth plane.
func ExponentialInvertedToLinearZ[T Float](invExpZ, zNear, zFar T) T {
	invExpZ = min(invExpZ, T(0.999999))
	return -Log(1-invExpZ)*(zFar-zNear) + zNear
}

// LinearizeDepth converts a [0,1] window-space depth produced by the standard
// perspective projection back to a linear value.
func LinearizeDepth[T Float](depth, zNearPlane, zFarPlane T) T {
	return (2 * zNearPlane) / (zFarPlane + zNearPlane - depth*(zFarPlane-zNearPlane))
}
