package store

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/infra/logger"
)

func TestPebbleBatchStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPebbleBatchStore(dir, logger.NopLogger{})
	require.NoError(t, err)

	b := model.NewBatch("cavendish", 800, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	b.AddSample(model.Sample{LengthCM: 20, Ripeness: model.RipenessUnripe, Confidence: 0.85, MeanHSV: [3]float64{40, 150, 190}})
	b.Reserve(300)
	require.NoError(t, s.Save(context.Background(), b))
	require.NoError(t, s.Close())

	s, err = NewPebbleBatchStore(dir, logger.NopLogger{})
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, 500.0, got.RemainingKg)
	assert.Equal(t, b.Quality(), got.Quality())
	assert.Equal(t, b.ShelfLifeDays(), got.ShelfLifeDays())
}

func TestPebbleBatchStoreSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPebbleBatchStore(dir, logger.NopLogger{})
	require.NoError(t, err)
	defer s.Close()

	good := model.NewBatch("cavendish", 100, time.Now())
	require.NoError(t, s.Save(context.Background(), good))
	require.NoError(t, s.db.Set([]byte(batchKeyPrefix+"BATCH-broken"), []byte("{not json"), pebble.Sync))

	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, good.ID, loaded[0].ID)
}
