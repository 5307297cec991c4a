// Package presence turns noisy per-frame pose signals into visitor presence
// state for the stand.
package presence

import "github.com/expolens/go-stand/pkg/vision"

// Sample is one per-frame presence reading. The absence of a Sample (a nil
// pointer) means no person was detected in the frame.
type Sample struct {
	Distance float64      // Estimated distance to the person in meters
	Nose     vision.Point // Nose keypoint in frame pixels
}
