package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyPending = errors.New("session already pending")
	ErrClosed         = errors.New("registry closed")
)

const DefaultTimeout = 60 * time.Second

type entry struct {
	id       string
	deadline time.Time
	timer    *time.Timer
}

// Registry owns the per-user waiting state and its deadline timers. A user
// appears in the table iff their timer is scheduled; every transition out of
// the armed state removes both under one lock, so whichever of submit,
// cancel or deadline claims the session first, the others observe "gone".
type Registry struct {
	timeout time.Duration

	mu     sync.Mutex
	armed  map[string]*entry
	closed bool
}

func NewRegistry(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Registry{timeout: timeout, armed: make(map[string]*entry)}
}

// Arm creates the waiting state for userID and schedules its deadline.
// onTimeout runs only if the session is still armed when the deadline hits;
// the timer body re-checks under the lock before acting.
func (r *Registry) Arm(userID string, onTimeout func(sessionID string)) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", ErrClosed
	}
	if _, ok := r.armed[userID]; ok {
		return "", ErrAlreadyPending
	}

	e := &entry{id: uuid.NewString(), deadline: time.Now().Add(r.timeout)}
	e.timer = time.AfterFunc(r.timeout, func() {
		if r.claim(userID, e.id) {
			onTimeout(e.id)
		}
	})
	r.armed[userID] = e
	return e.id, nil
}

// claim removes the entry iff it is still the same session.
func (r *Registry) claim(userID, sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.armed[userID]
	if !ok || e.id != sessionID {
		return false
	}
	delete(r.armed, userID)
	return true
}

// Consume claims the armed session for userID and cancels its timer.
// Returns false when no session exists; a late image after the deadline or
// a duplicate image lands here.
func (r *Registry) Consume(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.armed[userID]
	if !ok {
		return "", false
	}
	delete(r.armed, userID)
	e.timer.Stop()
	return e.id, true
}

// Cancel destroys the session if one exists. A cancel with no session is a
// silent no-op, not an error.
func (r *Registry) Cancel(userID string) bool {
	_, ok := r.Consume(userID)
	return ok
}

// Armed reports whether userID currently has a pending session.
func (r *Registry) Armed(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.armed[userID]
	return ok
}

// Close cancels every pending timer and rejects further Arm calls.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for uid, e := range r.armed {
		e.timer.Stop()
		delete(r.armed, uid)
	}
}
