package sqlstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copilot/internal/port"
	"copilot/internal/repository/sqlstore"
)

func TestRecordStore_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	db, err := sqlstore.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	store := sqlstore.NewRecordStore(db)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Ping(ctx))

	id, err := store.Save(ctx, port.CollectionScanHistory, map[string]any{
		"file_name": "req.pdf",
		"standard":  "India",
		"report":    "[Pass] ok",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	_, err = store.Save(ctx, port.CollectionTestSuites, map[string]any{"file_name": "other.pdf"})
	require.NoError(t, err)

	records, err := sqlstore.Recent(ctx, db, port.CollectionScanHistory, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(records[0].Fields), &fields))
	assert.Equal(t, "req.pdf", fields["file_name"])
	assert.Equal(t, "India", fields["standard"])
}

func TestRecordStore_SaveUnmarshalable(t *testing.T) {
	ctx := context.Background()
	db, err := sqlstore.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	store := sqlstore.NewRecordStore(db)
	defer func() { _ = store.Close() }()

	_, err = store.Save(ctx, port.CollectionScanHistory, map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}
