package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananai/brokerage/core/model"
)

func testInvoice(id string, revenue, profit float64) model.Invoice {
	return model.Invoice{
		OrderID:   id,
		Timestamp: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		BatchID:   "BATCH-1",
		Revenue:   revenue,
		Profit:    profit,
	}
}

func TestArrayLedgerAppendPreservesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := NewArrayLedger(path)
	require.NoError(t, err)

	require.NoError(t, l.Append(context.Background(), testInvoice("ORD-1", 100, 40)))
	require.NoError(t, l.Append(context.Background(), testInvoice("ORD-2", 200, 70)))

	all, err := l.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ORD-1", all[0].OrderID)
	assert.Equal(t, "ORD-2", all[1].OrderID)

	sum, err := l.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300.0, sum.Revenue)
	assert.Equal(t, 110.0, sum.Profit)
	assert.Equal(t, 2, sum.Orders)
}

func TestArrayLedgerEmptyFileIsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := NewArrayLedger(path)
	require.NoError(t, err)
	all, err := l.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	sum, err := l.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Orders)
}

func TestArrayLedgerRefusesToClobberCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := NewArrayLedger(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	err = l.Append(context.Background(), testInvoice("ORD-1", 100, 40))
	assert.Error(t, err, "append must not silently drop unreadable history")
}

func TestSQLiteLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := NewSQLiteLedger(path)
	require.NoError(t, err)
	defer func() { assert.NoError(t, l.Close()) }()

	require.NoError(t, l.Append(context.Background(), testInvoice("ORD-1", 100, 40)))
	require.NoError(t, l.Append(context.Background(), testInvoice("ORD-2", 200, 70)))

	all, err := l.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ORD-1", all[0].OrderID)

	sum, err := l.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 300.0, sum.Revenue)
	assert.Equal(t, 2, sum.Orders)
}
