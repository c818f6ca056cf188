package app

import (
	"fmt"

	"github.com/samvad-hq/catalog-client/internal/config"
	"github.com/samvad-hq/catalog-client/internal/logger"
	"github.com/samvad-hq/catalog-client/pkg/catalog"
)

// NewCatalogClient builds a catalog client from config.
func NewCatalogClient(cfg *config.Config, log logger.Logger) (*catalog.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := catalog.New(cfg.CatalogURL, catalog.Credentials{
		Username: cfg.CatalogUser,
		Password: cfg.CatalogPassword,
	}, catalog.Options{
		Timeout:   cfg.RequestTimeout,
		VerifyTLS: !cfg.TLSInsecureSkipVerify,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("build catalog client: %w", err)
	}

	log.InfoObj("catalog client ready", "catalog_client", map[string]any{
		"url":                 client.BaseURL(),
		"user":                cfg.CatalogUser,
		"timeout_seconds":     int(cfg.RequestTimeout.Seconds()),
		"tls_verification_on": !cfg.TLSInsecureSkipVerify,
	})
	return client, nil
}
