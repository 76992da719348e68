// Package dlp inspects text for personal data with Cloud DLP.
package dlp

import (
	"context"
	"fmt"

	dlpapi "cloud.google.com/go/dlp/apiv2"
	"cloud.google.com/go/dlp/apiv2/dlppb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/gateway"
)

const serviceName = "dlp"

// InfoTypes are the detectors requested on every inspection.
var InfoTypes = []string{"AADHAAR_NUMBER", "INDIA_PAN_INDIVIDUAL", "PHONE_NUMBER", "EMAIL_ADDRESS"}

// Inspector implements port.PIIInspector with the DLP content inspection API.
type Inspector struct {
	cfg    *config.GCPConfig
	client *gateway.LazyClient[*dlpapi.Client]
	logger *zap.Logger
}

// NewInspector creates a DLP inspector. The client dials on first use.
func NewInspector(cfg *config.GCPConfig, logger *zap.Logger, opts ...option.ClientOption) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{
		cfg: cfg,
		client: gateway.NewLazyClient(func(ctx context.Context) (*dlpapi.Client, error) {
			return dlpapi.NewClient(ctx, opts...)
		}),
		logger: logger,
	}
}

// Inspect returns every PII match in text, with the matched quote.
func (i *Inspector) Inspect(ctx context.Context, text string) ([]domain.PIIFinding, error) {
	ctx, cancel := gateway.CallContext(ctx, i.cfg.TimeoutSecs)
	defer cancel()

	resp, err := i.inspect(ctx, text)
	if err != nil {
		i.logger.Error("dlp.Inspector: inspect failed", zap.Error(err))
		return nil, domain.NewUpstreamError(serviceName, err, "Could not perform DLP inspection. Details: %v", err)
	}

	found := resp.GetResult().GetFindings()
	findings := make([]domain.PIIFinding, 0, len(found))
	for _, f := range found {
		findings = append(findings, domain.PIIFinding{
			Quote:      f.GetQuote(),
			InfoType:   f.GetInfoType().GetName(),
			Likelihood: f.GetLikelihood().String(),
		})
	}
	i.logger.Info("dlp.Inspector: scan complete", zap.Int("findings", len(findings)))
	return findings, nil
}

func (i *Inspector) inspect(ctx context.Context, text string) (*dlppb.InspectContentResponse, error) {
	client, err := i.client.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating dlp client: %w", err)
	}

	infoTypes := make([]*dlppb.InfoType, len(InfoTypes))
	for j, name := range InfoTypes {
		infoTypes[j] = &dlppb.InfoType{Name: name}
	}
	return client.InspectContent(ctx, &dlppb.InspectContentRequest{
		Parent: "projects/" + i.cfg.ProjectID,
		InspectConfig: &dlppb.InspectConfig{
			InfoTypes:    infoTypes,
			IncludeQuote: true,
		},
		Item: &dlppb.ContentItem{
			DataItem: &dlppb.ContentItem_Value{Value: text},
		},
	})
}

// Close releases the underlying connection.
func (i *Inspector) Close() error {
	return i.client.Close()
}
