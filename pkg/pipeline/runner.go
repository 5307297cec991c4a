package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/expolens/go-stand/internal/config"
	"github.com/expolens/go-stand/internal/log"
	"github.com/expolens/go-stand/pkg/demographics"
	"github.com/expolens/go-stand/pkg/presence"
	"github.com/expolens/go-stand/pkg/session"
	"github.com/expolens/go-stand/pkg/vision"
)

// Runner owns the background frame loop and exposes a start/stop control
// surface. All session state is written by the loop goroutine only; the
// control context reads it through the machine's guarded snapshots.
type Runner struct {
	stand *config.Stand

	source FrameSource
	sensor PresenceEstimator
	faces  FaceDetector
	demo   DemographicsEstimator
	sink   Sink

	tracker *presence.Tracker
	machine *session.Machine

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New wires a runner and registers the stand with the backend. Registration
// happens exactly once, here.
func New(stand *config.Stand, source FrameSource, sensor PresenceEstimator,
	faces FaceDetector, demo DemographicsEstimator, sink Sink) *Runner {

	r := &Runner{
		stand:   stand,
		source:  source,
		sensor:  sensor,
		faces:   faces,
		demo:    demo,
		sink:    sink,
		tracker: presence.NewTracker(),
		machine: session.NewMachine(stand.Name),
	}
	sink.ReportStand(stand)
	return r
}

// Start launches the background loop. Returns false if it is already
// running; a second loop is never spawned.
func (r *Runner) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		select {
		case <-r.done:
			// Previous loop finished; fall through and start a fresh one.
		default:
			return false
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
	return true
}

// Stop signals cancellation and waits up to stopTimeout for the loop to
// observe it. A loop stuck inside a capture or network call keeps running
// past the deadline; the straggler is logged and left to finish on its own.
func (r *Runner) Stop() bool {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return true
	}
	cancel()

	select {
	case <-done:
	case <-time.After(stopTimeout):
		log.Warn("pipeline loop missed the stop deadline, detaching",
			"stand", r.stand.Name, "timeout", stopTimeout)
	}
	return true
}

// IsRunning reports whether the loop goroutine is alive.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Engaged reports whether a visitor session is in progress.
func (r *Runner) Engaged() bool {
	return r.machine.Active()
}

// Session returns a snapshot of the session state for diagnostics.
func (r *Runner) Session() session.Snapshot {
	return r.machine.Snapshot()
}

// loop processes frames one at a time until cancelled or until the capture
// source fails. Frames arriving while an iteration is still busy are simply
// never read; there is no queue.
func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	log.Info("pipeline started",
		"stand", r.stand.Name, "activation_distance_m", ActivationDistance)

	for {
		frame, err := r.source.Capture()
		if err != nil {
			// Unlike report failures, a dead capture source cannot be
			// worked around frame-to-frame. Tear the pipeline down.
			log.Error("frame capture failed, pipeline stopping",
				"stand", r.stand.Name, "error", err)
			return
		}

		r.process(frame)

		select {
		case <-ctx.Done():
			log.Info("pipeline stopped", "stand", r.stand.Name)
			return
		case <-time.After(pollInterval):
		}
	}
}

// process drives one frame through presence tracking and the session machine.
func (r *Runner) process(frame []byte) {
	sample, err := r.sensor.Estimate(frame)
	if err != nil {
		log.Warn("presence estimate failed", "error", err)
		return
	}
	if sample == nil {
		// Nobody in frame: drop the movement reference, hold session state.
		r.tracker.Forget()
		return
	}

	slowing := r.tracker.Update(sample.Nose)

	switch {
	case !r.machine.Active() && sample.Distance <= ActivationDistance:
		visitor := r.match(frame, sample.Nose)
		if visitor == nil {
			// Close enough but no face matched; activation is deferred.
			return
		}
		if r.machine.Activate(*visitor) {
			log.Info("visitor engaged",
				"stand", r.stand.Name,
				"distance_m", sample.Distance,
				"range", vision.DistanceCategory(sample.Distance),
				"gender", visitor.Gender,
				"group", visitor.Bucket,
				"slowing_down", slowing)
		}

	case r.machine.Active() && sample.Distance > ActivationDistance:
		rec := r.machine.Deactivate()
		if rec == nil {
			return
		}
		log.Info("visitor left",
			"stand", r.stand.Name,
			"session", rec.ID,
			"dwell_min", rec.DwellMinutes)
		r.sink.ReportSession(rec)
	}
}

// match selects the face nearest the nose keypoint and classifies it.
// Returns nil when no candidate qualifies; the caller stays idle.
func (r *Runner) match(frame []byte, nose vision.Point) *demographics.Result {
	dets, err := r.faces.Detect(frame)
	if err != nil {
		log.Warn("face detection failed", "error", err)
		return nil
	}

	best := vision.SelectNearest(dets, nose)
	if best == nil {
		return nil
	}

	res, err := r.demo.Estimate(frame, *best)
	if err != nil {
		log.Debug("demographics unavailable", "error", err)
		return nil
	}
	return res
}
