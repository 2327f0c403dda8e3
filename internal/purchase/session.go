package purchase

import (
	"context"
	"sync"
)

// State tags the lifecycle of a purchase confirmation session.
type State string

const (
	StateIdle      State = "IDLE"
	StatePolling   State = "POLLING"
	StateSucceeded State = "SUCCEEDED"
	StateClosed    State = "CLOSED"
	StateTimedOut  State = "TIMED_OUT"
	StateCancelled State = "CANCELLED"
)

// Terminal reports whether no further checks may run in this state.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateClosed, StateTimedOut, StateCancelled:
		return true
	}
	return false
}

// transitions enumerates the legal state machine edges. Terminal states
// are absorbing.
var transitions = map[State][]State{
	StateIdle:    {StatePolling, StateCancelled},
	StatePolling: {StateSucceeded, StateClosed, StateTimedOut, StateCancelled},
}

// Session tracks one purchase attempt from order creation to resolution.
// At most one session is active per user; a superseding purchase cancels
// the previous one.
type Session struct {
	userID      int64
	orderNumber string
	planLevel   int

	mu       sync.Mutex
	state    State
	attempts int
	cancel   context.CancelFunc
	done     chan struct{}
}

func newSession(userID int64, orderNumber string, planLevel int) *Session {
	return &Session{
		userID:      userID,
		orderNumber: orderNumber,
		planLevel:   planLevel,
		state:       StateIdle,
		done:        make(chan struct{}),
	}
}

// OrderNumber returns the tracked merchant order number.
func (s *Session) OrderNumber() string {
	return s.orderNumber
}

// Snapshot returns current state and attempt count.
func (s *Session) Snapshot() (State, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.attempts
}

// transition moves the session to the requested state if the edge is
// legal. A false return means the caller holds a stale view (the session
// already left Polling) and must discard its result.
func (s *Session) transition(to State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, next := range transitions[s.state] {
		if next == to {
			s.state = to
			return true
		}
	}
	return false
}

// nextAttempt increments and returns the attempt counter.
func (s *Session) nextAttempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return s.attempts
}

func (s *Session) setCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
}

// stop marks the session cancelled and releases its polling goroutine.
// The state change happens before the context cancellation so an in-flight
// check observes the terminal state and discards its response.
func (s *Session) stop() {
	s.mu.Lock()
	for _, next := range transitions[s.state] {
		if next == StateCancelled {
			s.state = StateCancelled
			break
		}
	}
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Session) finish() {
	close(s.done)
}

// Done is closed when the polling goroutine exits. Sessions that never
// entered Polling have no goroutine and the channel stays open.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
