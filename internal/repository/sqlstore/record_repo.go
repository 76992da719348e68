package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"copilot/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordStore creates a RecordStore over an open database.
func NewRecordStore(db *sqlx.DB) port.RecordStore {
	return &recordRepo{db: db}
}

// StoredRecord is one row of the records table.
type StoredRecord struct {
	ID         string    `db:"id"`
	Collection string    `db:"collection"`
	Fields     string    `db:"fields"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *recordRepo) Save(ctx context.Context, collection string, fields map[string]any) (string, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("recordRepo.Save marshal: %w", err)
	}

	id := uuid.New().String()
	query := r.db.Rebind(`INSERT INTO records (id, collection, fields, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, id, collection, string(payload), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("recordRepo.Save: %w", err)
	}
	return id, nil
}

func (r *recordRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *recordRepo) Close() error {
	return r.db.Close()
}

// Recent returns the newest records of a collection.
func Recent(ctx context.Context, db *sqlx.DB, collection string, limit int) ([]StoredRecord, error) {
	var records []StoredRecord
	query := db.Rebind(`SELECT id, collection, fields, created_at FROM records
		WHERE collection = ? ORDER BY created_at DESC LIMIT ?`)
	if err := db.SelectContext(ctx, &records, query, collection, limit); err != nil {
		return nil, fmt.Errorf("sqlstore.Recent: %w", err)
	}
	return records, nil
}
