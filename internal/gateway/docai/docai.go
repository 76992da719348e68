// Package docai extracts text from requirement documents with Document AI.
package docai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
	"copilot/internal/port"
)

const serviceName = "documentai"

// Extractor implements port.DocumentExtractor with the Document AI processor service.
type Extractor struct {
	cfg    *config.GCPConfig
	client *gateway.LazyClient[*documentai.DocumentProcessorClient]
	logger *zap.Logger
}

// NewExtractor creates an extractor for the configured processor. The client
// dials the regional endpoint on first use; opts are applied after it.
func NewExtractor(cfg *config.GCPConfig, logger *zap.Logger, opts ...option.ClientOption) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{cfg: cfg, logger: logger}
	e.client = gateway.NewLazyClient(func(ctx context.Context) (*documentai.DocumentProcessorClient, error) {
		clientOpts := append([]option.ClientOption{
			option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", e.location())),
		}, opts...)
		return documentai.NewDocumentProcessorClient(ctx, clientOpts...)
	})
	return e
}

func (e *Extractor) location() string {
	if e.cfg.DocAILocation == "" {
		return "us"
	}
	return e.cfg.DocAILocation
}

// ProcessorName returns the full resource name of the configured processor.
func (e *Extractor) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", e.cfg.ProjectID, e.location(), e.cfg.DocAIProcessorID)
}

// Extract returns the full text of the document.
func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (string, error) {
	ctx, cancel := gateway.CallContext(ctx, e.cfg.TimeoutSecs)
	defer cancel()

	resp, err := e.process(ctx, input)
	if err != nil {
		e.logger.Error("docai.Extractor: process failed",
			zap.String("file", input.FileName),
			zap.String("processor_id", e.cfg.DocAIProcessorID),
			zap.Error(err))
		return "", domain.NewUpstreamError(serviceName, err,
			"Could not call Document AI. Check API is enabled, processor ID '%s' is correct and in region '%s'. Details: %v",
			e.cfg.DocAIProcessorID, e.location(), err)
	}

	text := resp.GetDocument().GetText()
	e.logger.Info("docai.Extractor: document processed",
		zap.String("file", input.FileName),
		zap.Int("chars", len(text)))
	return text, nil
}

func (e *Extractor) process(ctx context.Context, input port.ExtractInput) (*documentaipb.ProcessResponse, error) {
	client, err := e.client.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating document processor client: %w", err)
	}
	return client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: e.ProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  input.Content,
				MimeType: input.MIMEType,
			},
		},
	})
}

// Close releases the underlying connection.
func (e *Extractor) Close() error {
	return e.client.Close()
}
