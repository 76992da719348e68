package port

import "context"

// Record store collections.
const (
	CollectionScanHistory       = "scan_history"
	CollectionTestSuites        = "test_suites"
	CollectionSyntheticDatasets = "synthetic_datasets"
)

// RecordStore persists workflow outcomes. Each Save returns the generated
// record id; the store assigns the timestamp.
type RecordStore interface {
	Save(ctx context.Context, collection string, fields map[string]any) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
