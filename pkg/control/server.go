// Package control exposes a small local HTTP surface for operating the stand
// pipeline: status, start and stop. It is meant for the kiosk operator on the
// stand's own network, not for the museum backend.
package control

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/expolens/go-stand/pkg/session"
)

// Pipeline is the control surface the server drives.
type Pipeline interface {
	Start() bool
	Stop() bool
	IsRunning() bool
	Session() session.Snapshot
}

// Server wraps a fiber app around a pipeline.
type Server struct {
	app   *fiber.App
	addr  string
	stand string
	pipe  Pipeline
}

// NewServer creates the control server for the named stand.
func NewServer(addr, stand string, pipe Pipeline) *Server {
	s := &Server{
		app:   fiber.New(fiber.Config{DisableStartupMessage: true}),
		addr:  addr,
		stand: stand,
		pipe:  pipe,
	}

	s.app.Get("/api/status", s.handleStatus)
	s.app.Post("/api/start", s.handleStart)
	s.app.Post("/api/stop", s.handleStop)

	return s
}

// Listen blocks serving requests until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

type statusResponse struct {
	Stand       string `json:"stand"`
	Running     bool   `json:"running"`
	State       string `json:"state"`
	SessionID   string `json:"session_id,omitempty"`
	ActivatedAt string `json:"activated_at,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Group       string `json:"group,omitempty"`
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	snap := s.pipe.Session()

	resp := statusResponse{
		Stand:   s.stand,
		Running: s.pipe.IsRunning(),
		State:   snap.State.String(),
	}
	if snap.State == session.Active {
		resp.SessionID = snap.SessionID
		resp.ActivatedAt = snap.ActivatedAt.Format(time.RFC3339)
		if snap.Visitor != nil {
			resp.Gender = snap.Visitor.Gender
			resp.Group = snap.Visitor.Bucket
		}
	}
	return c.JSON(resp)
}

func (s *Server) handleStart(c *fiber.Ctx) error {
	started := s.pipe.Start()
	return c.JSON(fiber.Map{
		"started": started,
		"running": s.pipe.IsRunning(),
	})
}

func (s *Server) handleStop(c *fiber.Ctx) error {
	stopped := s.pipe.Stop()
	return c.JSON(fiber.Map{
		"stopped": stopped,
		"running": s.pipe.IsRunning(),
	})
}
