package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	coremetrics "github.com/bananai/brokerage/core/metrics"
)

type recordingSink struct {
	got []coremetrics.CommitRecord
	err error
}

func (r *recordingSink) RecordCommit(recs []coremetrics.CommitRecord) error {
	r.got = append(r.got, recs...)
	return r.err
}

func TestMultiSinkFanOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := NewMultiSink(a, b)
	rec := coremetrics.CommitRecord{OrderID: "ORD-1", Tier: "premium", Revenue: 100}
	assert.NoError(t, m.RecordCommit([]coremetrics.CommitRecord{rec}))
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestMultiSinkFirstError(t *testing.T) {
	a := &recordingSink{err: errors.New("boom")}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	err := m.RecordCommit([]coremetrics.CommitRecord{{OrderID: "ORD-1"}})
	assert.Error(t, err)
	assert.Empty(t, b.got, "later sinks must not run after an error")
}

func TestPromSinkRecordsCommit(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	assert.NoError(t, err)
	rec := coremetrics.CommitRecord{
		OrderID:     "ORD-1",
		Tier:        "premium",
		Destination: "USA",
		Kg:          100,
		Revenue:     262,
		Profit:      182,
		Time:        time.Now(),
	}
	assert.NoError(t, sink.RecordCommit([]coremetrics.CommitRecord{rec}))
	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestPromSinkRecordsDepletion(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	assert.NoError(t, err)
	rec, ok := sink.(coremetrics.DepletionRecorder)
	assert.True(t, ok)
	assert.NoError(t, rec.RecordStockDepleted("b1"))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.(*PromSink).depleted.WithLabelValues("b1")))
}

func TestMultiSinkForwardsDepletion(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	assert.NoError(t, err)
	m := NewMultiSink(&recordingSink{}, prom)
	assert.NoError(t, m.RecordStockDepleted("b2"))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.(*PromSink).depleted.WithLabelValues("b2")))
}
