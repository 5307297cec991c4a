package demographics

import (
	"sync"

	"github.com/expolens/go-stand/pkg/vision"
)

// Mock implements the pipeline's demographics estimator for testing.
type Mock struct {
	// EstimateFunc is called when Estimate is invoked.
	EstimateFunc func(frame []byte, face vision.Detection) (*Result, error)

	mu    sync.Mutex
	calls int
}

// Estimate calls EstimateFunc and records the call. Without an EstimateFunc
// it returns a fixed adult visitor.
func (m *Mock) Estimate(frame []byte, face vision.Detection) (*Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.EstimateFunc != nil {
		return m.EstimateFunc(frame, face)
	}
	return &Result{
		Gender:   "Female",
		AgeRange: "44-53",
		Bucket:   MapAgeBucket("44-53"),
		Age:      AgeMidpoint("44-53"),
	}, nil
}

// Close implements the estimator contract.
func (m *Mock) Close() error {
	return nil
}

// Calls returns how many times Estimate was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
