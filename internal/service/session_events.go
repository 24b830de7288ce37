package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/observability"
	"github.com/noah-isme/successpath-portal/internal/session"
)

type eventPublisher interface {
	Publish(subject string, data []byte) error
}

type sessionEvent struct {
	Source string `json:"source"`
	session.Change
}

// SessionEvents counts session transitions and fans them out on NATS as
// <subject>.login, <subject>.logout and <subject>.revoked.
type SessionEvents struct {
	publisher eventPublisher
	subject   string
	nodeID    string
	logger    zerolog.Logger
}

// NewSessionEvents builds the listener. A nil conn or an empty subject keeps
// the events local to the metrics.
func NewSessionEvents(conn *nats.Conn, subject string, logger zerolog.Logger) *SessionEvents {
	events := &SessionEvents{
		subject: strings.Trim(strings.TrimSpace(subject), "."),
		nodeID:  uuid.NewString(),
		logger:  logger.With().Str("component", "session_events").Logger(),
	}
	if conn != nil {
		events.publisher = conn
	}
	return events
}

// SessionChanged implements session.Listener.
func (e *SessionEvents) SessionChanged(_ context.Context, change session.Change) {
	observability.SessionChanges().WithLabelValues(string(change.Kind)).Inc()

	if e.publisher == nil || e.subject == "" {
		return
	}

	payload, err := json.Marshal(sessionEvent{Source: e.nodeID, Change: change})
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to encode session event")
		return
	}
	if err := e.publisher.Publish(e.subject+"."+string(change.Kind), payload); err != nil {
		e.logger.Warn().Err(err).Str("kind", string(change.Kind)).Msg("failed to publish session event")
	}
}
