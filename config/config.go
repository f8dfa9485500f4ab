package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bananai/brokerage/core/metrics"
	"github.com/bananai/brokerage/core/pricing"
	"github.com/bananai/brokerage/core/shipping"
	"github.com/bananai/brokerage/infra/ingest"
	"github.com/bananai/brokerage/infra/store"
)

type Config struct {
	Store    store.Config              `json:"store"`
	Pricing  pricing.Rates             `json:"pricing"`
	Shipping map[string]shipping.Route `json:"shipping"`
	Metrics  metrics.Config            `json:"metrics"`
	Ingest   ingest.Config             `json:"ingest"`
}

// Routes returns the configured route table, or nil to fall back to the
// built-in routes.
func (c *Config) Routes() shipping.RouteProvider {
	if len(c.Shipping) == 0 {
		return nil
	}
	upper := make(shipping.StaticRoutes, len(c.Shipping))
	for dest, r := range c.Shipping {
		upper[strings.ToUpper(dest)] = r
	}
	return upper
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BROKER_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "broker_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Store.SetDefaults()
	cfg.Pricing.SetDefaults()
	cfg.Ingest.SetDefaults()
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
