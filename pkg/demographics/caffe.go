package demographics

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"

	"github.com/expolens/go-stand/pkg/vision"
)

// ErrEmptyFaceRegion is returned when the face box, padded and clipped to the
// frame, has no area left.
var ErrEmptyFaceRegion = errors.New("demographics: empty face region")

const (
	inputSize = 227 // Both nets take 227x227 blobs

	// Gender predictions below this are reported as Unknown.
	genderConfidenceFloor = 0.65

	// Padding around the face box before classification.
	cropMargin = 20
)

// meanValues are the training-set channel means for the age/gender nets.
var meanValues = gocv.NewScalar(78.4263377603, 87.7689143744, 114.895847746, 0)

// Config holds the model file locations for the Caffe estimator.
type Config struct {
	AgeModel    string
	AgeProto    string
	GenderModel string
	GenderProto string
}

// DefaultConfig returns model paths under the given directory.
func DefaultConfig(dir string) Config {
	return Config{
		AgeModel:    filepath.Join(dir, "age_net.caffemodel"),
		AgeProto:    filepath.Join(dir, "age_deploy.prototxt"),
		GenderModel: filepath.Join(dir, "gender_net.caffemodel"),
		GenderProto: filepath.Join(dir, "gender_deploy.prototxt"),
	}
}

// CaffeEstimator runs the OpenCV age and gender Caffe nets on face crops.
type CaffeEstimator struct {
	age    gocv.Net
	gender gocv.Net
	mu     sync.Mutex // Protects inference
}

// NewCaffe loads both nets. The caller owns the estimator and must Close it.
func NewCaffe(cfg Config) (*CaffeEstimator, error) {
	for _, path := range []string{cfg.AgeModel, cfg.AgeProto, cfg.GenderModel, cfg.GenderProto} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("demographics: model file not found: %s", path)
		}
	}

	age := gocv.ReadNet(cfg.AgeModel, cfg.AgeProto)
	if age.Empty() {
		return nil, fmt.Errorf("demographics: failed to load age net from %s", cfg.AgeModel)
	}
	gender := gocv.ReadNet(cfg.GenderModel, cfg.GenderProto)
	if gender.Empty() {
		age.Close()
		return nil, fmt.Errorf("demographics: failed to load gender net from %s", cfg.GenderModel)
	}

	return &CaffeEstimator{age: age, gender: gender}, nil
}

// Estimate classifies the visitor behind the given face box. The box is
// padded by cropMargin and clipped to the frame before inference.
func (e *CaffeEstimator) Estimate(frame []byte, face vision.Detection) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	img, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("demographics: decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("demographics: empty frame")
	}

	rect := paddedRect(face, img.Cols(), img.Rows())
	if rect.Empty() {
		return nil, ErrEmptyFaceRegion
	}

	region := img.Region(rect)
	defer region.Close()

	blob := gocv.BlobFromImage(region, 1.0, image.Pt(inputSize, inputSize), meanValues, false, false)
	defer blob.Close()

	e.gender.SetInput(blob, "")
	genderProb := e.gender.Forward("")
	genderIdx, genderConf := argmax(genderProb)
	genderProb.Close()

	gender := Genders[len(Genders)-1]
	if genderIdx >= 0 && genderIdx < len(Genders)-1 && genderConf >= genderConfidenceFloor {
		gender = Genders[genderIdx]
	}

	e.age.SetInput(blob, "")
	ageProb := e.age.Forward("")
	ageIdx, _ := argmax(ageProb)
	ageProb.Close()

	if ageIdx < 0 || ageIdx >= len(AgeRanges) {
		return nil, fmt.Errorf("demographics: unexpected age net output index %d", ageIdx)
	}
	ageRange := AgeRanges[ageIdx]

	return &Result{
		Gender:   gender,
		AgeRange: ageRange,
		Bucket:   MapAgeBucket(ageRange),
		Age:      AgeMidpoint(ageRange),
	}, nil
}

// Close releases both nets.
func (e *CaffeEstimator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ageErr := e.age.Close()
	genderErr := e.gender.Close()
	if ageErr != nil {
		return ageErr
	}
	return genderErr
}

// paddedRect pads the face box by cropMargin and clips it to the frame.
func paddedRect(face vision.Detection, cols, rows int) image.Rectangle {
	x1 := int(face.X1) - cropMargin
	y1 := int(face.Y1) - cropMargin
	x2 := int(face.X2) + cropMargin
	y2 := int(face.Y2) + cropMargin

	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > cols {
		x2 = cols
	}
	if y2 > rows {
		y2 = rows
	}
	if x2 <= x1 || y2 <= y1 {
		return image.Rectangle{}
	}
	return image.Rect(x1, y1, x2, y2)
}

// argmax returns the index and value of the largest entry in a 1xN prob Mat.
func argmax(prob gocv.Mat) (int, float64) {
	idx := -1
	best := float32(0)
	for i := 0; i < prob.Cols(); i++ {
		v := prob.GetFloatAt(0, i)
		if idx < 0 || v > best {
			idx = i
			best = v
		}
	}
	return idx, float64(best)
}
