package adapter

import (
	"fmt"

	"PropScope/internal/config"
	"PropScope/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NewProvider instantiates the provider named by cfg.Provider
func NewProvider(cfg *config.UpstreamConfig, logger *logrus.Logger, cache interfaces.PageCache) (interfaces.StatsProvider, error) {
	factory, ok := GetFactory(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("stats provider %q is not registered (registered: %v)", cfg.Provider, ListFactories())
	}
	provider := factory(cfg, logger, cache)
	if provider == nil {
		return nil, fmt.Errorf("stats provider %q factory returned nil", cfg.Provider)
	}
	if provider.GetName() != cfg.Provider {
		logger.WithFields(logrus.Fields{
			"config_provider":  cfg.Provider,
			"adapter_provider": provider.GetName(),
		}).Warn("provider name does not match config")
	}
	logger.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"base_url": cfg.BaseURL,
		"cached":   cache != nil,
	}).Info("stats provider initialized")
	return provider, nil
}
