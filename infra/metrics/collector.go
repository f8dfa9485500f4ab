package metrics

import (
	"context"

	"github.com/bananai/brokerage/core/events"
	coremetrics "github.com/bananai/brokerage/core/metrics"
	"github.com/bananai/brokerage/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// commit and depletion events. It stops when the context is canceled or
// the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.CommitSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.OrderCommitted:
					_ = sink.RecordCommit([]coremetrics.CommitRecord{{
						OrderID:     e.OrderID,
						BatchID:     e.BatchID,
						Destination: e.Destination,
						Tier:        e.Tier,
						Kg:          e.Kg,
						Revenue:     e.Revenue,
						Profit:      e.Profit,
						Partial:     e.Partial,
						Time:        e.Time,
					}})
				case events.StockDepleted:
					if r, ok := sink.(coremetrics.DepletionRecorder); ok {
						_ = r.RecordStockDepleted(e.BatchID)
					}
				}
			}
		}
	}()
}
