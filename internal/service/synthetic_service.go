package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"copilot/internal/catalog"
	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/parser"
	"copilot/internal/port"
	"copilot/internal/prompt"
)

// SyntheticInput is the DTO for synthetic-data requests. A non-empty Prompt
// wins over Template.
type SyntheticInput struct {
	Prompt   string `json:"prompt"`
	Template string `json:"template"`
}

// SyntheticService defines the synthetic-data generation contract.
type SyntheticService interface {
	Generate(ctx context.Context, sess *domain.Session, input SyntheticInput) (*domain.SyntheticDataset, error)
}

type syntheticService struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	model   port.ModelGateway
	records port.RecordStore
	logger  *zap.Logger
}

// NewSyntheticService creates a new SyntheticService implementation.
func NewSyntheticService(
	cfg *config.Config,
	cat *catalog.Catalog,
	model port.ModelGateway,
	records port.RecordStore,
	logger *zap.Logger,
) SyntheticService {
	return &syntheticService{
		cfg:     cfg,
		catalog: cat,
		model:   model,
		records: records,
		logger:  nopIfNil(logger),
	}
}

func (s *syntheticService) resolvePrompt(input SyntheticInput) (string, error) {
	if p := strings.TrimSpace(input.Prompt); p != "" {
		return p, nil
	}
	if strings.TrimSpace(input.Template) == "" {
		return "", domain.ErrEmptyPrompt
	}
	tmpl, err := s.catalog.Template(input.Template)
	if err != nil {
		return "", err
	}
	return tmpl.Prompt, nil
}

func (s *syntheticService) Generate(ctx context.Context, sess *domain.Session, input SyntheticInput) (*domain.SyntheticDataset, error) {
	request, err := s.resolvePrompt(input)
	if err != nil {
		return nil, err
	}

	if err := s.cfg.GCP.RequireBindings(); err != nil {
		return nil, err
	}

	raw, err := s.model.Generate(ctx, prompt.BuildSyntheticData(request))
	if err != nil {
		s.logger.Warn("synthetic data: model call failed", zap.Error(err))
		return nil, err
	}

	clean := parser.Sanitize(raw)
	table, err := parser.ParseTabular(clean)
	if err != nil {
		s.logger.Warn("synthetic data: malformed model output", zap.Error(err))
		return nil, err
	}

	dataset := &domain.SyntheticDataset{
		Prompt:  request,
		RawJSON: clean,
		Table:   table,
	}
	dataset.RecordID = saveRecord(ctx, s.records, s.logger, port.CollectionSyntheticDatasets, map[string]any{
		"prompt":  dataset.Prompt,
		"records": dataset.Table,
	})

	s.logger.Info("synthetic data generated", zap.Int("records", table.Len()), zap.Int("columns", len(table.Columns)))

	if sess != nil {
		sess.LastDataset = dataset
	}
	return dataset, nil
}
