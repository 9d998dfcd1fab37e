package composer

// ComposerBuilderOption is a functional option for configuring a Composer.
// Use the With* functions to create options.
type ComposerBuilderOption func(*composer)

// WithViewportHook sets the function called once for every detected surface size change.
//
// Parameters:
//   - fn: receives the new width and height in pixels
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithViewportHook(fn ViewportFunc) ComposerBuilderOption {
	return func(c *composer) {
		c.onViewport = fn
	}
}

// WithFovY sets the vertical field of view in degrees (default 40).
//
// Parameters:
//   - degrees: vertical field of view
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithFovY(degrees float32) ComposerBuilderOption {
	return func(c *composer) {
		c.fovY = degrees
	}
}

// WithNear sets the near clipping plane distance (default 0.1).
func WithNear(near float32) ComposerBuilderOption {
	return func(c *composer) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance (default 100).
func WithFar(far float32) ComposerBuilderOption {
	return func(c *composer) {
		c.far = far
	}
}

// WithCameraDistance sets how far the camera is pulled back from the cube (default 5.5).
func WithCameraDistance(distance float32) ComposerBuilderOption {
	return func(c *composer) {
		c.cameraDistance = distance
	}
}

// WithSpinRate sets the rotation speed in radians per millisecond (default 0.001).
func WithSpinRate(radiansPerMilli float64) ComposerBuilderOption {
	return func(c *composer) {
		c.spinRate = radiansPerMilli
	}
}

// WithModelScale scales the cube along each object-space axis before it spins. Non-uniform
// factors are what the inverse-transpose normal matrix exists for; a zero factor collapses
// the model matrix and yields an all-zero normal matrix.
//
// Parameters:
//   - x, y, z: scale factors (default 1, 1, 1)
//
// Returns:
//   - ComposerBuilderOption: option function to apply
func WithModelScale(x, y, z float32) ComposerBuilderOption {
	return func(c *composer) {
		c.scale = [3]float32{x, y, z}
	}
}
