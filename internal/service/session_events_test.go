package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
)

type publisherStub struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *publisherStub) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return p.err
}

func TestSessionEventsPublishesPerKind(t *testing.T) {
	publisher := &publisherStub{}
	events := NewSessionEvents(nil, "portal.session.", testLogger())
	events.publisher = publisher

	at := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	events.SessionChanged(context.Background(), session.Change{
		SessionID: "sid-1",
		Kind:      session.ChangeLogin,
		Role:      models.RoleAdmin,
		UserID:    "u1",
		At:        at,
	})

	require.Equal(t, []string{"portal.session.login"}, publisher.subjects)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &decoded))
	require.Equal(t, "sid-1", decoded["session_id"])
	require.Equal(t, "login", decoded["kind"])
	require.Equal(t, "admin", decoded["role"])
	require.NotEmpty(t, decoded["source"])
}

func TestSessionEventsWithoutConnectionIsLocal(t *testing.T) {
	events := NewSessionEvents(nil, "portal.session", testLogger())
	require.Nil(t, events.publisher)

	require.NotPanics(t, func() {
		events.SessionChanged(context.Background(), session.Change{Kind: session.ChangeLogout})
	})
}

func TestSessionEventsPublishFailureIsSwallowed(t *testing.T) {
	publisher := &publisherStub{err: errors.New("nats: connection closed")}
	events := NewSessionEvents(nil, "portal.session", testLogger())
	events.publisher = publisher

	require.NotPanics(t, func() {
		events.SessionChanged(context.Background(), session.Change{Kind: session.ChangeRevoked})
	})
	require.Equal(t, []string{"portal.session.revoked"}, publisher.subjects)
}
