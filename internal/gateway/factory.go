// Package gateway holds the clients for the hosted Google Cloud services the
// co-pilot delegates to, and the registry that selects the model provider.
package gateway

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"copilot/internal/config"
	"copilot/internal/port"
)

// ProviderFactory creates a ModelGateway from configuration.
type ProviderFactory func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.ModelGateway, error)

// registry of model provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewModelGateway creates the ModelGateway named by cfg.Model.Provider.
func NewModelGateway(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.ModelGateway, error) {
	factory, ok := providers[cfg.Model.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Model.Provider)
	}
	return factory(ctx, cfg, logger)
}
