package vision

// Depth estimation constants, calibrated for the stand camera at 640x480.
const (
	// When a face is ~120px tall the person stands roughly one meter away.
	// This gives us: distance = depthCalibration / faceHeightPx
	depthCalibration = 120.0

	minDepth = 0.3
	maxDepth = 5.0
)

// EstimateDepth calculates approximate distance from the apparent face height.
// faceHeight is the face bounding box height in pixels.
// Returns distance in meters, or 0 if the height is invalid.
//
// This uses a simple inverse relationship: distance ≈ k / faceHeight.
// Accuracy is approximately ±30% at distances under 3 meters.
func EstimateDepth(faceHeight float64) float64 {
	if faceHeight <= 0 {
		return 0
	}

	distance := depthCalibration / faceHeight

	// Clamp to the range the stand cares about
	if distance < minDepth {
		distance = minDepth
	}
	if distance > maxDepth {
		distance = maxDepth
	}

	return distance
}

// DistanceCategory returns a human-readable distance category.
func DistanceCategory(distance float64) string {
	if distance <= 0 {
		return "unknown"
	}
	if distance < 0.5 {
		return "very close"
	}
	if distance < 1.0 {
		return "close"
	}
	if distance < 2.0 {
		return "nearby"
	}
	if distance < 3.0 {
		return "moderate"
	}
	return "far"
}
