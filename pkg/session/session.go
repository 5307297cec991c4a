// Package session tracks a single visitor engagement from approach to
// departure and produces one immutable record per completed visit.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expolens/go-stand/pkg/demographics"
)

// State of the machine. There is no terminal state; the machine cycles
// between Idle and Active for as long as the pipeline runs.
type State int

const (
	Idle State = iota
	Active
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Record is one completed visit. It is built exactly once, at deactivation,
// and owned by the reporting sink until emitted.
type Record struct {
	ID           string
	Stand        string
	ActivatedAt  time.Time
	DwellMinutes float64
	Visitor      demographics.Result
}

// Machine holds the Idle/Active session state for one stand. It is written
// only by the pipeline loop; the mutex makes the state readable from the
// control context.
type Machine struct {
	mu sync.RWMutex

	stand string
	state State

	id            string
	activatedAt   time.Time
	deactivatedAt time.Time
	visitor       *demographics.Result

	now func() time.Time
}

// Snapshot is a point-in-time copy of the machine state for diagnostics.
type Snapshot struct {
	State         State
	SessionID     string
	ActivatedAt   time.Time
	DeactivatedAt time.Time
	Visitor       *demographics.Result
}

// NewMachine creates an idle machine for the named stand.
func NewMachine(stand string) *Machine {
	return &Machine{
		stand: stand,
		now:   time.Now,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Active reports whether a session is in progress.
func (m *Machine) Active() bool {
	return m.State() == Active
}

// Activate starts a session for the given visitor. The demographics snapshot
// is frozen for the whole session; later frames do not update it. Returns
// false if a session is already in progress.
func (m *Machine) Activate(visitor demographics.Result) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Active {
		return false
	}

	m.state = Active
	m.id = uuid.NewString()
	m.activatedAt = m.now()
	m.visitor = &visitor
	return true
}

// Deactivate ends the session and builds its record. Returns nil when no
// session is in progress.
func (m *Machine) Deactivate() *Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Active || m.visitor == nil {
		return nil
	}

	m.deactivatedAt = m.now()
	m.state = Idle

	rec := &Record{
		ID:           m.id,
		Stand:        m.stand,
		ActivatedAt:  m.activatedAt,
		DwellMinutes: m.deactivatedAt.Sub(m.activatedAt).Minutes(),
		Visitor:      *m.visitor,
	}
	m.visitor = nil
	return rec
}

// Snapshot returns a copy of the current state for the control surface.
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		State:         m.state,
		SessionID:     m.id,
		ActivatedAt:   m.activatedAt,
		DeactivatedAt: m.deactivatedAt,
	}
	if m.visitor != nil {
		v := *m.visitor
		snap.Visitor = &v
	}
	return snap
}
