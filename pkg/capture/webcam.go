// Package capture provides camera frame sources for the stand pipeline.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ErrFrameRead is returned when the camera stops delivering frames.
var ErrFrameRead = errors.New("capture: failed to read frame")

// Webcam reads JPEG frames from a local video device.
type Webcam struct {
	cap *gocv.VideoCapture
	img gocv.Mat
	mu  sync.Mutex
}

// OpenWebcam opens the given capture device (0 is the default camera).
func OpenWebcam(device int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("capture: open device %d: %w", device, err)
	}
	return &Webcam{cap: cap, img: gocv.NewMat()}, nil
}

// Capture reads the next frame and returns it JPEG-encoded. Frames that
// arrive while the caller is busy are dropped by the device, not queued.
func (w *Webcam) Capture() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ok := w.cap.Read(&w.img); !ok || w.img.Empty() {
		return nil, ErrFrameRead
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, w.img)
	if err != nil {
		return nil, fmt.Errorf("capture: encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the device and the reusable frame buffer.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.img.Close()
	return w.cap.Close()
}
