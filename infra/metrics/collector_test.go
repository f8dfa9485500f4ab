package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bananai/brokerage/core/events"
	coremetrics "github.com/bananai/brokerage/core/metrics"
	"github.com/bananai/brokerage/internal/eventbus"
)

type captureSink struct {
	commits  chan coremetrics.CommitRecord
	depleted chan string
}

func newCaptureSink() *captureSink {
	return &captureSink{
		commits:  make(chan coremetrics.CommitRecord, 8),
		depleted: make(chan string, 8),
	}
}

func (s *captureSink) RecordCommit(recs []coremetrics.CommitRecord) error {
	for _, r := range recs {
		s.commits <- r
	}
	return nil
}

func (s *captureSink) RecordStockDepleted(batchID string) error {
	s.depleted <- batchID
	return nil
}

func TestEventCollectorForwardsCommits(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	sink := newCaptureSink()
	StartEventCollector(context.Background(), bus, sink)

	bus.Publish(events.OrderCommitted{
		OrderID:     "ORD-1",
		BatchID:     "b1",
		Destination: "USA",
		Tier:        "premium",
		Kg:          100,
		Revenue:     262,
		Profit:      182,
		Time:        time.Now(),
	})
	bus.Publish(events.StockDepleted{BatchID: "b1"})

	select {
	case rec := <-sink.commits:
		assert.Equal(t, "ORD-1", rec.OrderID)
		assert.Equal(t, "USA", rec.Destination)
		assert.Equal(t, "premium", rec.Tier)
		assert.Equal(t, 262.0, rec.Revenue)
	case <-time.After(time.Second):
		t.Fatal("commit never reached the sink")
	}
	select {
	case id := <-sink.depleted:
		assert.Equal(t, "b1", id)
	case <-time.After(time.Second):
		t.Fatal("depletion never reached the sink")
	}
}

func TestEventCollectorStopsWhenBusCloses(t *testing.T) {
	bus := eventbus.New()
	sink := newCaptureSink()
	StartEventCollector(context.Background(), bus, sink)
	bus.Close()

	bus.Publish(events.OrderCommitted{OrderID: "ORD-late"})
	select {
	case rec := <-sink.commits:
		t.Fatalf("unexpected record %s after close", rec.OrderID)
	case <-time.After(50 * time.Millisecond):
	}
}
