package helper

import (
	"estate_market/floorplan"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("editor session not found")

// EditorSession binds one floor plan editor to the account that opened it.
type EditorSession struct {
	ID          string
	AccountId   uint
	FloorPlanId uint

	mu       sync.Mutex
	editor   *floorplan.Editor
	lastUsed time.Time
}

// Do runs fn with exclusive access to the editor.
func (s *EditorSession) Do(fn func(e *floorplan.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.editor)
}

func (s *EditorSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*EditorSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*EditorSession)}
}

var Sessions = NewSessionRegistry()

func (r *SessionRegistry) Open(accountId, floorPlanId uint, editor *floorplan.Editor) *EditorSession {
	s := &EditorSession{
		ID:          uuid.NewString(),
		AccountId:   accountId,
		FloorPlanId: floorPlanId,
		editor:      editor,
		lastUsed:    time.Now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	EditorSessionsOpen.Set(float64(len(r.sessions)))
	r.mu.Unlock()
	return s
}

// Get only returns sessions owned by accountId.
func (r *SessionRegistry) Get(id string, accountId uint) (*EditorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.AccountId != accountId {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRegistry) Close(id string, accountId uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.AccountId != accountId {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	EditorSessionsOpen.Set(float64(len(r.sessions)))
	return nil
}

// Sweep closes sessions untouched for longer than idle and returns how
// many were removed.
func (r *SessionRegistry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	EditorSessionsOpen.Set(float64(len(r.sessions)))
	return removed
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
