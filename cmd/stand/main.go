// Stand agent: watches the exhibit camera, sessions visitors and reports
// completed visits to the museum backend.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/expolens/go-stand/internal/config"
	"github.com/expolens/go-stand/internal/log"
	"github.com/expolens/go-stand/pkg/capture"
	"github.com/expolens/go-stand/pkg/control"
	"github.com/expolens/go-stand/pkg/demographics"
	"github.com/expolens/go-stand/pkg/pipeline"
	"github.com/expolens/go-stand/pkg/presence"
	"github.com/expolens/go-stand/pkg/reporting"
	"github.com/expolens/go-stand/pkg/vision"
)

func main() {
	_ = godotenv.Load()
	log.Init(config.LogLevel())

	configPath := flag.String("config", "config.json", "path to the stand config file")
	flag.Parse()

	stand, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	visionCfg := vision.DefaultConfig()
	visionCfg.ModelPath = config.FaceModelPath()
	detector, err := vision.NewYuNet(visionCfg)
	if err != nil {
		log.Error("failed to load face detector", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	demo, err := demographics.NewCaffe(demographics.DefaultConfig(config.DemographicsDir()))
	if err != nil {
		log.Error("failed to load demographics models", "error", err)
		os.Exit(1)
	}
	defer demo.Close()

	cam, err := capture.OpenWebcam(config.CameraDevice())
	if err != nil {
		log.Error("failed to open camera", "device", config.CameraDevice(), "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	sink := reporting.NewClient(config.Endpoint())
	runner := pipeline.New(stand, cam, presence.NewFaceEstimator(detector), detector, demo, sink)
	runner.Start()

	srv := control.NewServer(config.ControlAddr(), stand.Name, runner)
	go func() {
		if err := srv.Listen(); err != nil {
			log.Error("control server stopped", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down", "stand", stand.Name)
	if err := srv.Shutdown(); err != nil {
		log.Warn("control server shutdown", "error", err)
	}
	runner.Stop()
}
