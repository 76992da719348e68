package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"copilot/internal/domain"
	"copilot/internal/parser"
)

func newSession(t *testing.T) *domain.Session {
	t.Helper()
	table, err := parser.ParseTabular(`[{"id":"TC001","type":"positive"},{"id":"TC002","note":null}]`)
	require.NoError(t, err)
	return &domain.Session{
		ID:       uuid.New(),
		Standard: "India",
		Messages: []domain.ChatMessage{{Role: domain.ChatRoleAssistant, Content: "Welcome"}},
		LastTestSuite: &domain.TestSuite{
			SourceName: "req.txt",
			Table:      table,
			Metrics:    domain.TestSuiteMetrics{Total: 2, Positive: 1},
		},
	}
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewMemoryStore(time.Hour, time.Minute)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	sess := newSession(t)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "India", got.Standard)
	require.NotNil(t, got.LastTestSuite)
	assert.Equal(t, []string{"id", "type", "note"}, got.LastTestSuite.Table.Columns)
	assert.True(t, got.LastTestSuite.Table.Cell(0, "note").IsMissing())
	assert.Equal(t, domain.KindNull, got.LastTestSuite.Table.Cell(1, "note").Kind())

	got.Standard = "EU"
	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "India", again.Standard, "returned sessions are copies")

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewMemoryStore(time.Minute, time.Hour)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess := newSession(t)
	require.NoError(t, store.Save(ctx, sess))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_JanitorSweeps(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewMemoryStore(time.Millisecond, 5*time.Millisecond)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Save(context.Background(), newSession(t)))
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewMemoryStore(time.Minute, time.Minute)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
