// Package session keeps live charts alive between requests.
//
// A session owns one [pipeline.Chart]: its scales, marks and figure stay in
// memory so later requests can resize the container or change mark
// attributes and observe the incremental relayout, instead of rebuilding
// the chart from its document every time.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(chart, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	err = sess.Do(func(ch *pipeline.Chart) {
//	    ch.Resize(1024, 768)
//	    ch.Flush()
//	})
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandutsar/bqplot/pkg/pipeline"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("session expired")
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is one live chart.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	chart     *pipeline.Chart
	expiresAt time.Time
}

// New wraps chart in a session that expires after ttl.
func New(chart *pipeline.Chart, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		chart:     chart,
		expiresAt: now.Add(ttl),
	}
}

// Do runs fn with exclusive access to the chart. Charts are not safe for
// concurrent use, so every access goes through Do. It returns ErrNotFound
// without calling fn once the session was deleted or expired, which can
// happen between a Get and the call.
func (s *Session) Do(fn func(ch *pipeline.Chart)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chart == nil {
		return ErrNotFound
	}
	fn(s.chart)
	return nil
}

// Touch pushes the expiry ttl into the future.
func (s *Session) Touch(ttl time.Duration) {
	s.mu.Lock()
	s.expiresAt = time.Now().Add(ttl)
	s.mu.Unlock()
}

// ExpiresAt returns the current expiry.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// close detaches the chart's marks.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chart != nil {
		s.chart.Close()
		s.chart = nil
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist and ErrExpired if it
	// existed but timed out; expired sessions are dropped on access.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session and releases its chart.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many were dropped.
	Cleanup(ctx context.Context) (int, error)
}
