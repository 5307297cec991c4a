// Package vision provides face detection primitives for the stand pipeline.
package vision

// Point is a 2D position in frame pixels.
type Point struct {
	X, Y float64
}

// Detection represents one detected face.
type Detection struct {
	X1, Y1, X2, Y2 float64 // Bounding box corners in pixels
	Confidence     float64 // Detection confidence (0-1)
	Nose           Point   // Nose-tip landmark in pixels
}

// Center returns the center point of the bounding box.
func (d Detection) Center() Point {
	return Point{X: (d.X1 + d.X2) / 2, Y: (d.Y1 + d.Y2) / 2}
}

// Width returns the bounding box width in pixels.
func (d Detection) Width() float64 {
	return d.X2 - d.X1
}

// Height returns the bounding box height in pixels.
func (d Detection) Height() float64 {
	return d.Y2 - d.Y1
}

// Detector is the interface for face detection backends.
type Detector interface {
	// Detect finds faces in the JPEG image and returns their positions.
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}
