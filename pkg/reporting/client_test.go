package reporting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expolens/go-stand/internal/config"
	"github.com/expolens/go-stand/pkg/demographics"
	"github.com/expolens/go-stand/pkg/session"
)

func record() *session.Record {
	return &session.Record{
		ID:           "s-1",
		Stand:        "dinosaurs",
		ActivatedAt:  time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		DwellMinutes: 1.5,
		Visitor: demographics.Result{
			Gender:   "Female",
			AgeRange: "25-32",
			Bucket:   "young",
			Age:      28.5,
		},
	}
}

func TestClient_ReportSession(t *testing.T) {
	var (
		gotPath    string
		gotBody    map[string]any
		gotHeaders http.Header
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.ReportSession(record())

	assert.Equal(t, "/api/visits/push", gotPath)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, "Female", gotBody["gender"])
	assert.Equal(t, "young", gotBody["group"])
	assert.Equal(t, "25-32", gotBody["age_group"])
	assert.Equal(t, 28.5, gotBody["age"])
	assert.Equal(t, "dinosaurs", gotBody["name"])
	assert.Equal(t, 1.5, gotBody["time_elapsed"])

	parsed, err := time.Parse(time.RFC3339, gotBody["datetime"].(string))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)))
}

func TestClient_ReportStand(t *testing.T) {
	var (
		gotPath string
		gotBody map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/") // trailing slash must not double up
	c.ReportStand(&config.Stand{
		Name:        "dinosaurs",
		Description: "Late Cretaceous fossils",
		Section:     "paleontology",
	})

	assert.Equal(t, "/api/stands/push", gotPath)
	assert.Equal(t, "dinosaurs", gotBody["name"])
	assert.Equal(t, "Late Cretaceous fossils", gotBody["description"])
	assert.Equal(t, "paleontology", gotBody["section"])
}

func TestClient_DropsOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.ReportSession(record())

	// Exactly one attempt: the event is dropped, never retried.
	assert.Equal(t, 1, calls)
}

func TestClient_DropsOnUnreachableBackend(t *testing.T) {
	// Nothing listens here; both calls must return without panicking.
	c := NewClient("http://127.0.0.1:1")
	c.ReportStand(&config.Stand{Name: "dinosaurs"})
	c.ReportSession(record())
}
