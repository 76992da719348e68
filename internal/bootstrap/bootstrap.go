// Package bootstrap wires configuration into the stores, gateways and
// services shared by the HTTP server and the command-line client.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"copilot/internal/catalog"
	"copilot/internal/config"
	"copilot/internal/gateway"
	"copilot/internal/gateway/dlp"
	"copilot/internal/gateway/docai"
	_ "copilot/internal/gateway/gemini"
	"copilot/internal/gateway/speech"
	_ "copilot/internal/gateway/vertex"
	"copilot/internal/integration/jira"
	"copilot/internal/port"
	"copilot/internal/repository/noop"
	"copilot/internal/repository/sqlstore"
	"copilot/internal/service"
	"copilot/internal/session"
	s3storage "copilot/internal/storage/s3"
)

// Record store providers.
const (
	RecordStoreNoop     = "noop"
	RecordStorePostgres = "postgres"
	RecordStoreSQLite   = "sqlite"
)

// Session store providers.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired services and the resources they own.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Catalog *catalog.Catalog

	Records  port.RecordStore
	RecordDB *sqlx.DB

	Sessions   service.SessionService
	Compliance service.ComplianceService
	TestCases  service.TestCaseService
	Synthetic  service.SyntheticService
	Chat       service.ChatService
	Assist     service.AssistService
	Exports    service.ExportService

	// Dependencies gating readiness, by name.
	Dependencies map[string]Pinger

	closers []func() error
}

// New builds the application graph from cfg. Hosted-service clients are
// created even when GCP bindings are missing; each operation reports the
// missing configuration when invoked.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger, Dependencies: map[string]Pinger{}}
	if err := app.wire(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) wire(ctx context.Context) error {
	cfg, logger := app.Config, app.Logger
	var err error

	app.Catalog, err = catalog.Load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	model, err := gateway.NewModelGateway(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating model gateway: %w", err)
	}

	extractor := docai.NewExtractor(&cfg.GCP, logger)
	inspector := dlp.NewInspector(&cfg.GCP, logger)
	transcriber := speech.NewTranscriber(&cfg.GCP, logger)
	app.closers = append(app.closers, extractor.Close, inspector.Close, transcriber.Close)
	tracker := jira.NewClient(&cfg.Jira, logger)

	if err := app.openRecordStore(ctx); err != nil {
		return err
	}

	sessions, err := app.openSessionStore(ctx)
	if err != nil {
		return err
	}

	var storage port.ObjectStorage
	if cfg.Storage.Enabled {
		storage, err = s3storage.NewS3Client(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("initializing export archive: %w", err)
		}
	}

	app.Sessions = service.NewSessionService(sessions, app.Catalog, logger)
	app.Compliance = service.NewComplianceService(cfg, app.Catalog, extractor, model, app.Records, logger)
	app.TestCases = service.NewTestCaseService(cfg, extractor, model, app.Records, tracker, logger)
	app.Synthetic = service.NewSyntheticService(cfg, app.Catalog, model, app.Records, logger)
	app.Chat = service.NewChatService(cfg, model, logger)
	app.Assist = service.NewAssistService(cfg, inspector, transcriber, logger)
	app.Exports = service.NewExportService(storage, &cfg.Storage, logger)

	logger.Info("application wired",
		zap.String("model_provider", cfg.Model.Provider),
		zap.String("record_store", cfg.RecordStore.Provider),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("export_archive", storage != nil),
	)
	return nil
}

func (app *App) openRecordStore(ctx context.Context) error {
	cfg := app.Config.RecordStore
	switch cfg.Provider {
	case "", RecordStoreNoop:
		app.Records = noop.NewNoopStore(app.Logger)
		return nil
	case RecordStorePostgres:
		db, err := sqlstore.NewPostgresDB(&cfg.DB)
		if err != nil {
			return err
		}
		app.RecordDB = db
	case RecordStoreSQLite:
		db, err := sqlstore.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		app.RecordDB = db
	default:
		return fmt.Errorf("unknown record store provider: %s", cfg.Provider)
	}
	app.Records = sqlstore.NewRecordStore(app.RecordDB)
	app.Dependencies["records"] = app.Records
	app.closers = append(app.closers, app.Records.Close)
	return nil
}

func (app *App) openSessionStore(ctx context.Context) (port.SessionStore, error) {
	cfg := app.Config.Session
	switch cfg.Store {
	case "", SessionStoreMemory:
		store := session.NewMemoryStore(cfg.TTL, time.Minute)
		app.closers = append(app.closers, store.Close)
		return store, nil
	case SessionStoreRedis:
		store, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, err
		}
		app.Dependencies["sessions"] = store
		app.closers = append(app.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Store)
	}
}

// Close releases every resource opened by New, newest first.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
