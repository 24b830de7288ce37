package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsolatesBrowsers(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry(NewMemoryStore(), newGatedVerifier(), zerolog.Nop())

	first, err := registry.Get(ctx, "browser-a")
	require.NoError(t, err)
	second, err := registry.Get(ctx, "browser-b")
	require.NoError(t, err)

	require.NoError(t, first.Login(ctx, "tok", adminIdentity))
	require.True(t, first.IsAdmin())
	require.False(t, second.State().Authenticated())

	again, err := registry.Get(ctx, "browser-a")
	require.NoError(t, err)
	require.Same(t, first, again)
	require.Equal(t, 2, registry.Len())
}

func TestRegistryRetriesAfterStoreFailure(t *testing.T) {
	registry := NewRegistry(&failingStore{}, nil, zerolog.Nop())
	manager, err := registry.Get(context.Background(), "sid")
	require.Error(t, err)
	require.NotNil(t, manager)
	require.False(t, manager.State().Authenticated())
	require.Zero(t, registry.Len())
}

func TestRegistryPrune(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := now
	registry := NewRegistry(NewMemoryStore(), nil, zerolog.Nop(), WithClock(func() time.Time { return clock }))

	_, err := registry.Get(context.Background(), "old")
	require.NoError(t, err)
	clock = now.Add(time.Hour)
	_, err = registry.Get(context.Background(), "fresh")
	require.NoError(t, err)

	require.Equal(t, 1, registry.Prune(30*time.Minute, now.Add(time.Hour)))
	_, ok := registry.Peek("old")
	require.False(t, ok)
	_, ok = registry.Peek("fresh")
	require.True(t, ok)

	registry.Forget("fresh")
	require.Zero(t, registry.Len())
}
