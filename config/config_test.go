package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `store:
  batch_backend: "pebble"
  data_dir: "/tmp/broker-data"
  ledger_backend: "sqlite"
pricing:
  base_rate: 1.50
  premium:
    margin: 1.60
    quality_bonus: 1.4
shipping:
  iceland:
    transit_days: 9
    cost_per_kg: 2.40
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
ingest:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "inspection/samples"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"store.batch_backend", cfg.Store.BatchBackend, "pebble"},
		{"store.data_dir", cfg.Store.DataDir, "/tmp/broker-data"},
		{"store.ledger_backend", cfg.Store.LedgerBackend, "sqlite"},
		{"pricing.base_rate", cfg.Pricing.BaseRate, 1.50},
		{"pricing.premium.margin", cfg.Pricing.Premium.Margin, 1.60},
		{"pricing.standard.margin", cfg.Pricing.Standard.Margin, 1.20},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"ingest.enabled", cfg.Ingest.Enabled, true},
		{"ingest.broker", cfg.Ingest.Broker, "tcp://localhost:1883"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
	routes := cfg.Routes().Routes()
	if r, ok := routes["ICELAND"]; !ok || r.TransitDays != 9 {
		t.Errorf("shipping route mismatch: %+v", routes)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.BatchBackend != "file" || cfg.Store.LedgerBackend != "array" {
		t.Errorf("store defaults not applied: %+v", cfg.Store)
	}
	if cfg.Pricing.BaseRate != 1.35 {
		t.Errorf("pricing defaults not applied: %+v", cfg.Pricing)
	}
	if cfg.Routes() != nil {
		t.Error("empty shipping section must fall back to built-in routes")
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
