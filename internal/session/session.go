// Package session owns the ordered transcript of one conversation and
// the connection it runs over. A Session is single-owner state: it has
// no internal locking, concurrent use must be serialized by the caller.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/hunyport/huny/internal/gradio"
	"github.com/hunyport/huny/internal/models"
)

// ErrUnbound is returned by Submit when the session holds no
// connection yet.
var ErrUnbound = errors.New("session is not bound to any target")

// Dialer establishes a validated connection towards target. Injectable
// so tests can run without a live space.
type Dialer func(ctx context.Context, target string) (models.Predictor, error)

// Session is either Unbound (fresh, no target) or Bound (target +
// connection + transcript). It never reconnects on its own: a broken
// connection stays broken until the caller binds again.
type Session struct {
	dial      Dialer
	target    string
	conn      models.Predictor
	exchanges []models.Exchange
}

// New returns an Unbound session using the given dialer. A nil dialer
// falls back to connecting over gradio with the passed options.
func New(dial Dialer, opts ...gradio.Option) *Session {
	if dial == nil {
		dial = func(ctx context.Context, target string) (models.Predictor, error) {
			return gradio.Connect(ctx, target, opts...)
		}
	}
	return &Session{dial: dial}
}

// Bound reports whether the session holds a live connection.
func (s *Session) Bound() bool { return s.conn != nil }

// Target returns the currently bound endpoint target, or "" when
// Unbound.
func (s *Session) Target() string { return s.target }

// Exchanges returns a copy of the transcript in insertion order.
func (s *Session) Exchanges() []models.Exchange {
	cpy := make([]models.Exchange, len(s.exchanges))
	copy(cpy, s.exchanges)
	return cpy
}

// Bind connects the session to target. Binding the already-bound
// target keeps connection and transcript as they are. Binding a
// different target is all-or-nothing: the new connection must succeed
// before the old binding and transcript are discarded. On failure the
// session is left exactly as it was.
func (s *Session) Bind(ctx context.Context, target string) error {
	if s.conn != nil && s.target == target {
		return nil
	}
	conn, err := s.dial(ctx, target)
	if err != nil {
		return err
	}
	s.conn = conn
	s.target = target
	s.exchanges = nil
	return nil
}

// Submit dispatches query over the bound connection. On success
// exactly one Exchange is appended and the response returned. On
// failure the transcript and binding are untouched, so the caller may
// retry without corrupting state. A failed turn is never recorded.
func (s *Session) Submit(ctx context.Context, query string) (string, error) {
	if s.conn == nil {
		return "", ErrUnbound
	}
	response, err := s.conn.Predict(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to submit query: %w", err)
	}
	s.exchanges = append(s.exchanges, models.Exchange{Query: query, Response: response})
	return response, nil
}

// Clear empties the transcript. Target and connection stay put.
func (s *Session) Clear() {
	s.exchanges = nil
}

// Resume binds to conv's target and preloads its transcript, so a
// stored conversation can be continued. Same all-or-nothing rule as
// Bind.
func (s *Session) Resume(ctx context.Context, conv models.Conversation) error {
	if err := s.Bind(ctx, conv.Target); err != nil {
		return err
	}
	s.exchanges = append([]models.Exchange{}, conv.Exchanges...)
	return nil
}

// Conversation snapshots the session into its serialized shape.
func (s *Session) Conversation(id string) models.Conversation {
	return models.Conversation{
		ID:        id,
		Target:    s.target,
		Exchanges: s.Exchanges(),
	}
}
