package store

import (
	"context"

	"github.com/bananai/brokerage/core/model"
)

// BatchStore persists batch records keyed by batch id. Load reconstructs
// the cached quality and shelf-life aggregates from the persisted
// computed-stats block; it never recomputes them from samples.
type BatchStore interface {
	// LoadAll scans storage and returns every readable batch. Corrupt
	// records are skipped with a warning, never a wholesale failure.
	LoadAll(ctx context.Context) ([]*model.Batch, error)
	// Save overwrites the record for the batch id with the full batch,
	// including freshly computed stats.
	Save(ctx context.Context, b *model.Batch) error
	Close() error
}

// ReceiptStore persists the per-order artifacts written during a commit:
// the receipt (a full invoice snapshot) and the shipping manifest.
type ReceiptStore interface {
	SaveReceipt(ctx context.Context, inv model.Invoice) error
	WriteManifest(ctx context.Context, orderID, content string) error
}

// Summary aggregates the full ledger.
type Summary struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Orders  int     `json:"orders"`
}

// LedgerStore is the durable order history. Logically append-only: entries
// are never reordered or mutated once written.
type LedgerStore interface {
	Append(ctx context.Context, inv model.Invoice) error
	All(ctx context.Context) ([]model.Invoice, error)
	Summary(ctx context.Context) (Summary, error)
	Close() error
}
