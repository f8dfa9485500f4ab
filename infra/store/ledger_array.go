package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/store"
)

// ArrayLedger realizes the logical append-only ledger as a single JSON
// array, rewritten in full on every append. The mutex is the required
// external exclusion: without it two near-simultaneous appends would lose
// one entry.
type ArrayLedger struct {
	path string
	mu   sync.Mutex
}

// NewArrayLedger prepares the parent directory; the file itself is created
// on first append.
func NewArrayLedger(path string) (*ArrayLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &ArrayLedger{path: path}, nil
}

// Append reads the full ledger, appends in memory and writes it back. A
// ledger that exists but cannot be parsed fails the append: prior entries
// must never be silently dropped.
func (l *ArrayLedger) Append(_ context.Context, inv model.Invoice) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	history, err := l.read()
	if err != nil {
		return err
	}
	history = append(history, inv)
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(l.path, data)
}

// All returns every committed invoice in commit order.
func (l *ArrayLedger) All(_ context.Context) ([]model.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// Summary aggregates revenue, profit and order count across the ledger.
func (l *ArrayLedger) Summary(ctx context.Context) (store.Summary, error) {
	history, err := l.All(ctx)
	if err != nil {
		return store.Summary{}, err
	}
	var s store.Summary
	for _, inv := range history {
		s.Revenue += inv.Revenue
		s.Profit += inv.Profit
		s.Orders++
	}
	return s, nil
}

// Close implements store.LedgerStore.
func (l *ArrayLedger) Close() error { return nil }

func (l *ArrayLedger) read() ([]model.Invoice, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []model.Invoice
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}
