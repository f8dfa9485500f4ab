package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananai/brokerage/config"
	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/infra/logger"
	"github.com/bananai/brokerage/infra/store"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{Store: store.Config{DataDir: t.TempDir()}}
	cfg.Store.SetDefaults()
	cfg.Pricing.SetDefaults()
	return cfg
}

func TestCommitSurvivesReload(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	b, err := svc.Intake(ctx, "cavendish", 1000)
	require.NoError(t, err)
	require.NoError(t, svc.IngestSample(ctx, b.ID,
		model.Sample{LengthCM: 18, Ripeness: model.RipenessMidRipe, Confidence: 0.9}))

	inv, err := svc.Engine.Price(b, 400, "USA", "standard")
	require.NoError(t, err)
	committed, err := svc.Engine.Commit(ctx, inv, b)
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	// A full reload must reproduce the remaining mass and the ledger.
	svc2, err := New(cfg)
	require.NoError(t, err)
	defer svc2.Close()

	got, ok := svc2.Inventory.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, 600.0, got.RemainingKg)
	assert.Equal(t, b.Quality(), got.Quality())

	led, err := store.NewArrayLedger(cfg.Store.LedgerPath())
	require.NoError(t, err)
	defer led.Close()
	entries, err := led.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, committed.OrderID, entries[0].OrderID)
	assert.Equal(t, 400.0, entries[0].Kg)

	sum, err := svc2.Engine.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Orders)
	assert.Equal(t, committed.Revenue, sum.Revenue)
}

func TestNewReleasesBatchStoreOnFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.BatchBackend = "pebble"
	// A plain file where the orders tree should go makes the receipt
	// store constructor fail after the batch store has opened.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Store.DataDir, "orders"), nil, 0o644))

	_, err := New(cfg)
	require.Error(t, err)

	// The pebble lock must have been released.
	s, err := store.NewPebbleBatchStore(cfg.Store.PebbleDir(), logger.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
