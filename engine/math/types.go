package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * Elements are stored row-major and points are treated as row vectors
 * (p' = p * M), so the translation lives in elements 12, 13 and 14 and
 * "apply A, then B" is written A.Mul(B).
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

// Vec2I is an integer 2D coordinate.
type Vec2I struct {
	X, Y int
}
