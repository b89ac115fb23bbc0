package services

import (
	"morningful_landing_go/models"
	"morningful_landing_go/services/guided"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreGetIsStable(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	store := NewSessionStore(h.flows, nil, time.Minute)

	a := store.Get("sess-1", "US")
	b := store.Get("sess-1", "US")
	assert.Same(t, a, b)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "sess-1", a.Visitor().SessionID)

	f1, err := a.Form(models.LeadContact)
	require.NoError(t, err)
	f2, err := b.Form(models.LeadContact)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, guided.StateClosed, f1.State())

	assert.Same(t, a.Chat(), b.Chat())

	_, err = a.Form(models.LeadType("bogus"))
	assert.Error(t, err)
}

func TestSessionStoreSweep(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	store := NewSessionStore(h.flows, nil, 30*time.Minute)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	idle := store.Get("idle", "")
	form, err := idle.Form(models.LeadDemoRequest)
	require.NoError(t, err)
	require.NoError(t, form.Open())

	now = now.Add(20 * time.Minute)
	store.Get("active", "")

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	assert.Equal(t, guided.StateClosed, form.State())
	assert.ErrorIs(t, form.Open(), guided.ErrDisposed)

	// an evicted visitor starts over with fresh controllers
	fresh, err := store.Get("idle", "").Form(models.LeadDemoRequest)
	require.NoError(t, err)
	assert.NotSame(t, form, fresh)
}

func TestSessionStoreStopDisposesEverything(t *testing.T) {
	h := newFlowHarness(t, "http://127.0.0.1:1", time.Second)
	store := NewSessionStore(h.flows, nil, 0)
	store.StartCleanup(time.Hour)

	chat := store.Get("s", "").Chat()
	require.NoError(t, chat.Open())

	store.Stop()
	store.Stop()
	assert.Equal(t, 0, store.Len())
	assert.ErrorIs(t, chat.Open(), ErrChatDisposed)
	assert.Zero(t, h.clock.Pending())
}
