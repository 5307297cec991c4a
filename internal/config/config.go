// Package config loads the stand configuration file and environment settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Defaults for environment-driven settings.
const (
	DefaultEndpoint        = "http://localhost:8000"
	DefaultFaceModelPath   = "models/face_detection_yunet.onnx"
	DefaultDemographicsDir = "models/demographics"
	DefaultControlAddr     = ":5000"
)

// Stand describes one exhibit stand as registered with the backend.
type Stand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Section     string `json:"section"`
}

// file is the on-disk layout: the stand description nests under "config".
type file struct {
	Config Stand `json:"config"`
}

// Load reads a stand config file. The file is read once at startup and the
// returned value is treated as read-only for the lifetime of the pipeline.
func Load(path string) (*Stand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if f.Config.Name == "" {
		return nil, fmt.Errorf("config: %s: stand name is required", path)
	}

	return &f.Config, nil
}

// Endpoint returns the backend base URL from STAND_ENDPOINT.
func Endpoint() string {
	if v := os.Getenv("STAND_ENDPOINT"); v != "" {
		return v
	}
	return DefaultEndpoint
}

// CameraDevice returns the capture device ID from STAND_CAMERA.
func CameraDevice() int {
	if v := os.Getenv("STAND_CAMERA"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return 0
}

// FaceModelPath returns the YuNet model path from STAND_FACE_MODEL.
func FaceModelPath() string {
	if v := os.Getenv("STAND_FACE_MODEL"); v != "" {
		return v
	}
	return DefaultFaceModelPath
}

// DemographicsDir returns the age/gender model directory from STAND_DEMOGRAPHICS_DIR.
func DemographicsDir() string {
	if v := os.Getenv("STAND_DEMOGRAPHICS_DIR"); v != "" {
		return v
	}
	return DefaultDemographicsDir
}

// ControlAddr returns the listen address for the local control server
// from STAND_CONTROL_ADDR.
func ControlAddr() string {
	if v := os.Getenv("STAND_CONTROL_ADDR"); v != "" {
		return v
	}
	return DefaultControlAddr
}

// LogLevel returns the log level from STAND_LOG_LEVEL.
func LogLevel() string {
	if v := os.Getenv("STAND_LOG_LEVEL"); v != "" {
		return v
	}
	return "info"
}
