package store

import (
	"fmt"
	"path/filepath"
)

// Config defines where and how the commit artifacts are persisted.
type Config struct {
	// BatchBackend selects the batch store type: "file" or "pebble".
	BatchBackend string `json:"batch_backend"`
	// DataDir is the root directory for all store artifacts.
	DataDir string `json:"data_dir"`
	// LedgerBackend selects the ledger store type: "array" or "sqlite".
	LedgerBackend string `json:"ledger_backend"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BatchBackend == "" {
		c.BatchBackend = "file"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.LedgerBackend == "" {
		c.LedgerBackend = "array"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BatchBackend != "file" && c.BatchBackend != "pebble" {
		return fmt.Errorf("unknown batch backend %s", c.BatchBackend)
	}
	if c.LedgerBackend != "array" && c.LedgerBackend != "sqlite" {
		return fmt.Errorf("unknown ledger backend %s", c.LedgerBackend)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	return nil
}

// BatchDir is where file batch records live.
func (c Config) BatchDir() string { return filepath.Join(c.DataDir, "batches") }

// PebbleDir is where the pebble batch database lives.
func (c Config) PebbleDir() string { return filepath.Join(c.DataDir, "batches.pebble") }

// ReceiptsDir is where per-order receipts live.
func (c Config) ReceiptsDir() string { return filepath.Join(c.DataDir, "orders", "receipts") }

// ManifestsDir is where shipping manifests live.
func (c Config) ManifestsDir() string { return filepath.Join(c.DataDir, "orders", "manifests") }

// LedgerPath is the ledger file location, by backend.
func (c Config) LedgerPath() string {
	if c.LedgerBackend == "sqlite" {
		return filepath.Join(c.DataDir, "orders", "ledger.db")
	}
	return filepath.Join(c.DataDir, "orders", "ledger.json")
}
