package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for sweeping idle sessions when none is configured
	defaultSweepInterval = time.Minute
)

// Session is anything a registry can dispose of once it goes idle.
type Session interface {
	Close()
}

type sessionEntry[S Session] struct {
	session  S
	lastUsed atomic.Int64 // Unix nanoseconds
}

func (e *sessionEntry[S]) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// SessionRegistry owns one Session per session ID and closes sessions that
// have not been used for idleTTL.
//
// Call Stop() during graceful shutdown; it closes every remaining session.
type SessionRegistry[S Session] struct {
	log     *logrus.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry[S]

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSessionRegistry creates a registry and starts its background sweeper.
// A non-positive sweepInterval falls back to one minute.
func NewSessionRegistry[S Session](idleTTL, sweepInterval time.Duration, log *logrus.Logger) *SessionRegistry[S] {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}

	r := &SessionRegistry[S]{
		log:      log,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry[S]),
		stopChan: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.sweepLoop(sweepInterval)

	return r
}

// Get returns the session for id and marks it as used.
func (r *SessionRegistry[S]) Get(id string) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		var zero S
		return zero, false
	}
	entry.touch(r.now())
	return entry.session, true
}

// GetOrCreate returns the session for id, calling create when none exists.
// The boolean reports whether create was called.
func (r *SessionRegistry[S]) GetOrCreate(id string, create func() S) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[id]; ok {
		entry.touch(r.now())
		return entry.session, false
	}

	entry := &sessionEntry[S]{session: create()}
	entry.touch(r.now())
	r.sessions[id] = entry
	return entry.session, true
}

// Remove closes and forgets the session for id.
func (r *SessionRegistry[S]) Remove(id string) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		entry.session.Close()
	}
}

func (r *SessionRegistry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop halts the sweeper and closes all sessions. Safe to call multiple times.
func (r *SessionRegistry[S]) Stop() {
	if !r.stopped.CompareAndSwap(false, true) {
		return
	}
	close(r.stopChan)
	r.wg.Wait()

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*sessionEntry[S])
	r.mu.Unlock()

	for _, entry := range sessions {
		entry.session.Close()
	}
	r.log.Infof("Session registry stopped, closed %d sessions", len(sessions))
}

func (r *SessionRegistry[S]) sweepLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			r.log.Debug("Session sweep goroutine stopping")
			return
		case <-ticker.C:
			r.SweepIdle()
		}
	}
}

// SweepIdle closes sessions idle for longer than the registry's TTL.
func (r *SessionRegistry[S]) SweepIdle() int {
	cutoff := r.now().Add(-r.idleTTL).UnixNano()

	r.mu.Lock()
	var expired []S
	for id, entry := range r.sessions {
		if entry.lastUsed.Load() < cutoff {
			expired = append(expired, entry.session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	// Close outside the lock; a session may block briefly while cancelling its load.
	for _, s := range expired {
		s.Close()
	}

	if len(expired) > 0 {
		r.log.Debugf("Closed %d idle sessions", len(expired))
	}
	return len(expired)
}
