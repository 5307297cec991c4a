// Package pipeline runs the stand's frame loop: presence sensing, visitor
// matching and session reporting.
package pipeline

import (
	"time"

	"github.com/expolens/go-stand/internal/config"
	"github.com/expolens/go-stand/pkg/demographics"
	"github.com/expolens/go-stand/pkg/presence"
	"github.com/expolens/go-stand/pkg/session"
	"github.com/expolens/go-stand/pkg/vision"
)

// ActivationDistance is the engagement threshold in meters. It is a fixed
// property of the stand hardware, not part of the backend config.
const ActivationDistance = 1.5

const (
	// pollInterval is how long each iteration waits on the cancellation
	// signal before pulling the next frame.
	pollInterval = 10 * time.Millisecond

	// stopTimeout bounds how long Stop waits for the loop to wind down.
	stopTimeout = 2 * time.Second
)

// FrameSource supplies one JPEG frame per call. A failed capture is fatal
// for the pipeline.
type FrameSource interface {
	Capture() ([]byte, error)
}

// PresenceEstimator reports whether a person stands in front of the camera.
// A nil sample with a nil error means nobody is in frame.
type PresenceEstimator interface {
	Estimate(frame []byte) (*presence.Sample, error)
}

// FaceDetector finds candidate faces in a frame.
type FaceDetector interface {
	Detect(frame []byte) ([]vision.Detection, error)
}

// DemographicsEstimator classifies the visitor behind a matched face box.
type DemographicsEstimator interface {
	Estimate(frame []byte, face vision.Detection) (*demographics.Result, error)
}

// Sink receives the stand registration and completed sessions. Delivery is
// best effort; the pipeline never waits on outcomes.
type Sink interface {
	ReportStand(stand *config.Stand)
	ReportSession(rec *session.Record)
}
