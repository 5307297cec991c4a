package presence

import (
	"fmt"

	"github.com/expolens/go-stand/pkg/vision"
)

// FaceEstimator derives a presence sample from face detections: the most
// confident face anchors the reading, and distance comes from the apparent
// face size.
type FaceEstimator struct {
	detector vision.Detector
}

// NewFaceEstimator creates a presence estimator backed by a face detector.
func NewFaceEstimator(detector vision.Detector) *FaceEstimator {
	return &FaceEstimator{detector: detector}
}

// Estimate analyzes a frame and returns a presence sample, or nil when no
// person is in view.
func (e *FaceEstimator) Estimate(frame []byte) (*Sample, error) {
	dets, err := e.detector.Detect(frame)
	if err != nil {
		return nil, fmt.Errorf("presence: detect: %w", err)
	}
	if len(dets) == 0 {
		return nil, nil
	}

	best := dets[0]
	for _, d := range dets[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}

	distance := vision.EstimateDepth(best.Height())
	if distance == 0 {
		return nil, nil
	}

	return &Sample{Distance: distance, Nose: best.Nose}, nil
}
