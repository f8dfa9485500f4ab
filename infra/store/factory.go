package store

import (
	"fmt"

	"github.com/bananai/brokerage/core/logger"
	"github.com/bananai/brokerage/core/store"
)

// NewBatchStore builds the configured batch store backend.
func NewBatchStore(cfg Config, log logger.Logger) (store.BatchStore, error) {
	switch cfg.BatchBackend {
	case "file":
		return NewFileBatchStore(cfg.BatchDir(), log)
	case "pebble":
		return NewPebbleBatchStore(cfg.PebbleDir(), log)
	default:
		return nil, fmt.Errorf("unknown batch backend %s", cfg.BatchBackend)
	}
}

// NewLedgerStore builds the configured ledger backend.
func NewLedgerStore(cfg Config) (store.LedgerStore, error) {
	switch cfg.LedgerBackend {
	case "array":
		return NewArrayLedger(cfg.LedgerPath())
	case "sqlite":
		return NewSQLiteLedger(cfg.LedgerPath())
	default:
		return nil, fmt.Errorf("unknown ledger backend %s", cfg.LedgerBackend)
	}
}

// NewReceiptStore builds the receipt and manifest writer.
func NewReceiptStore(cfg Config) (*FileReceiptStore, error) {
	return NewFileReceiptStore(cfg.ReceiptsDir(), cfg.ManifestsDir())
}
