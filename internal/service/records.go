package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"copilot/internal/domain"
	"copilot/internal/port"
)

// saveRecord persists a workflow outcome. Failures are logged and never fail
// the workflow; the returned id is empty when nothing was stored.
func saveRecord(ctx context.Context, store port.RecordStore, logger *zap.Logger, collection string, fields map[string]any) string {
	if store == nil {
		return ""
	}
	id, err := store.Save(ctx, collection, fields)
	if err != nil {
		if errors.Is(err, domain.ErrRecordStoreDisabled) {
			logger.Debug("record store disabled, outcome not persisted", zap.String("collection", collection))
		} else {
			logger.Warn("failed to persist workflow outcome", zap.String("collection", collection), zap.Error(err))
		}
		return ""
	}
	return id
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
