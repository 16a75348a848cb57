package workflow

import (
	"context"
	"sync"
	"time"

	"interview-scheduler-backend/internal/scheduling"
	"interview-scheduler-backend/internal/store"
)

const (
	// sessionTTL is how long an untouched session survives. Operators who
	// walk away mid-booking lose the session; nothing was persisted, so
	// expiry needs no cleanup beyond dropping the entry.
	sessionTTL = 4 * time.Hour

	sweepInterval = 10 * time.Minute
)

type session struct {
	booking  *Booking
	lastSeen time.Time
}

// Manager tracks live booking sessions so the HTTP layer can drive one
// workflow across requests. Sessions live in memory only; a restart drops
// in-flight bookings, which is safe because nothing is persisted before
// Confirmed. Idle sessions are swept out after sessionTTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	store       store.Store
	engine      *scheduling.SlotSuggestionEngine
	detector    *scheduling.ConflictDetector
	onConfirmed ConfirmedFunc
}

// NewManager creates a session manager sharing one store/engine/detector.
func NewManager(s store.Store, engine *scheduling.SlotSuggestionEngine, detector *scheduling.ConflictDetector, onConfirmed ConfirmedFunc) *Manager {
	return &Manager{
		sessions:    make(map[string]*session),
		store:       s,
		engine:      engine,
		detector:    detector,
		onConfirmed: onConfirmed,
	}
}

// Create starts a new booking session and registers it.
func (m *Manager) Create(candidateID, createdBy string) *Booking {
	b := NewBooking(m.store, m.engine, m.detector, candidateID, createdBy, m.onConfirmed)

	m.mu.Lock()
	m.sessions[b.State().ID] = &session{booking: b, lastSeen: time.Now()}
	m.mu.Unlock()
	return b
}

// Get returns a live session by id, refreshing its idle timer.
func (m *Manager) Get(id string) (*Booking, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = time.Now()
	return s.booking, true
}

// Remove drops a session from the registry. Called once a session reaches a
// terminal step and the caller no longer needs it.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// StartSweeper launches a background loop evicting sessions idle for longer
// than sessionTTL. It stops when ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.prune(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) prune(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > sessionTTL {
			delete(m.sessions, id)
		}
	}
}
