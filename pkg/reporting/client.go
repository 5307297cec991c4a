// Package reporting delivers stand registrations and completed visits to the
// museum backend. Delivery is best effort: failures are logged and the event
// is dropped, never retried or queued.
package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/expolens/go-stand/internal/config"
	"github.com/expolens/go-stand/internal/httpc"
	"github.com/expolens/go-stand/internal/log"
	"github.com/expolens/go-stand/pkg/session"
)

const (
	standsPath = "/api/stands/push"
	visitsPath = "/api/visits/push"

	reportTimeout = 10 * time.Second
	userAgent     = "go-stand/1.0"
)

// Client posts JSON payloads to the backend.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a reporting client for the given backend base URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     httpc.NewClient(reportTimeout),
	}
}

// visitPayload is the backend's expected visit shape.
type visitPayload struct {
	Gender      string  `json:"gender"`
	Group       string  `json:"group"`
	AgeGroup    string  `json:"age_group"`
	Age         float64 `json:"age"`
	Name        string  `json:"name"`
	Datetime    string  `json:"datetime"`
	TimeElapsed float64 `json:"time_elapsed"`
}

// ReportStand registers the stand with the backend. Called once, when the
// pipeline is constructed.
func (c *Client) ReportStand(stand *config.Stand) {
	if err := c.post(standsPath, stand); err != nil {
		log.Warn("stand registration dropped", "stand", stand.Name, "error", err)
		return
	}
	log.Info("stand registered", "stand", stand.Name, "endpoint", c.endpoint)
}

// ReportSession emits one completed visit. Called once per session.
func (c *Client) ReportSession(rec *session.Record) {
	payload := visitPayload{
		Gender:      rec.Visitor.Gender,
		Group:       rec.Visitor.Bucket,
		AgeGroup:    rec.Visitor.AgeRange,
		Age:         rec.Visitor.Age,
		Name:        rec.Stand,
		Datetime:    rec.ActivatedAt.Format(time.RFC3339),
		TimeElapsed: rec.DwellMinutes,
	}

	if err := c.post(visitsPath, payload); err != nil {
		log.Warn("visit report dropped", "session", rec.ID, "error", err)
		return
	}
	log.Info("visit reported", "session", rec.ID, "dwell_min", rec.DwellMinutes)
}

func (c *Client) post(path string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("reporting: encode %s: %w", path, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("reporting: build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reporting: post %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("reporting: post %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
