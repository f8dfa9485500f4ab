package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bananai/brokerage/core/events"
	"github.com/bananai/brokerage/core/inventory"
	"github.com/bananai/brokerage/core/logger"
	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/pricing"
	"github.com/bananai/brokerage/core/shipping"
	"github.com/bananai/brokerage/core/store"
	"github.com/bananai/brokerage/internal/eventbus"
)

var (
	// ErrInvalidMass rejects non-positive order requests.
	ErrInvalidMass = errors.New("requested mass must be positive")
	// ErrDepleted means the batch had no stock left; nothing was written.
	ErrDepleted = errors.New("batch depleted")
	// ErrCommitFailed is the generic failure returned to callers when a
	// persistence step fails. Full detail goes to the logs only.
	ErrCommitFailed = errors.New("commit failed")
)

// Engine orchestrates a transaction from proposal through pricing to the
// four-artifact commit: batch record, receipt, ledger entry, manifest.
type Engine struct {
	inv      *inventory.Inventory
	pricer   *pricing.Engine
	table    *shipping.Table
	batches  store.BatchStore
	receipts store.ReceiptStore
	ledger   store.LedgerStore
	bus      eventbus.EventBus
	log      logger.Logger
	mu       sync.Mutex
}

// NewEngine wires an Engine. bus and log may be nil.
func NewEngine(
	inv *inventory.Inventory,
	pricer *pricing.Engine,
	table *shipping.Table,
	batches store.BatchStore,
	receipts store.ReceiptStore,
	ledger store.LedgerStore,
	bus eventbus.EventBus,
	log logger.Logger,
) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		inv:      inv,
		pricer:   pricer,
		table:    table,
		batches:  batches,
		receipts: receipts,
		ledger:   ledger,
		bus:      bus,
		log:      log,
	}
}

// Proposals matches the destination's transit requirements against the
// live inventory.
func (e *Engine) Proposals(destination string, kg float64, tier string) (perfect, alternative []*model.Batch) {
	route := e.table.Route(destination)
	return e.inv.Recommend(kg, route.TransitDays, model.ParseTier(tier))
}

// Price builds a priced invoice for the batch. The invoice stays transient
// until Commit succeeds.
func (e *Engine) Price(b *model.Batch, kg float64, destination, tier string) (model.Invoice, error) {
	if kg <= 0 {
		return model.Invoice{}, ErrInvalidMass
	}
	parsed := model.ParseTier(tier)
	route := e.table.Route(destination)
	quality := b.Quality()
	unit := e.pricer.UnitPrice(parsed, quality, route.CostPerKg)
	revenue := round2(kg * unit)
	shipCost := round2(kg * route.CostPerKg)
	return model.Invoice{
		OrderID:        fmt.Sprintf("ORD-%s", uuid.NewString()[:8]),
		Timestamp:      time.Now(),
		BatchID:        b.ID,
		Destination:    strings.ToUpper(destination),
		RequestedKg:    round2(kg),
		Kg:             round2(kg),
		Tier:           parsed.String(),
		UnitPrice:      unit,
		Revenue:        revenue,
		ShippingCost:   shipCost,
		Profit:         round2(revenue - shipCost),
		ShippingRateKg: route.CostPerKg,
		QualityAtSale:  quality,
		State:          model.StatePriced,
	}, nil
}

// Commit reserves stock and persists the four artifacts in order: batch
// record, receipt, ledger entry, manifest. A depleted batch fails with no
// side effects. A partial reservation rewrites the invoice totals for the
// mass actually taken, keeping the unit price. Once the batch is reserved
// in memory, any persistence failure is logged in full and surfaced as
// ErrCommitFailed: the commit is at-least-once, not atomic, and the
// documented recovery is reloading the batch store from disk.
func (e *Engine) Commit(ctx context.Context, inv model.Invoice, b *model.Batch) (model.Invoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	actual := b.Reserve(inv.RequestedKg)
	if actual == 0 {
		inv.State = model.StateFailed
		return inv, ErrDepleted
	}
	partial := actual < inv.RequestedKg
	if partial {
		e.log.Warnf("partial fulfillment for %s: %.2fkg of %.2fkg requested", inv.OrderID, actual, inv.RequestedKg)
		inv.Kg = round2(actual)
		inv.Revenue = round2(actual * inv.UnitPrice)
		inv.ShippingCost = round2(actual * inv.ShippingRateKg)
		inv.Profit = round2(inv.Revenue - inv.ShippingCost)
	}

	if err := e.batches.Save(ctx, b); err != nil {
		return e.failCommit(inv, "batch save", err)
	}
	if err := e.receipts.SaveReceipt(ctx, inv); err != nil {
		return e.failCommit(inv, "receipt", err)
	}
	if err := e.ledger.Append(ctx, inv); err != nil {
		return e.failCommit(inv, "ledger append", err)
	}
	if err := e.receipts.WriteManifest(ctx, inv.OrderID, RenderManifest(inv)); err != nil {
		return e.failCommit(inv, "manifest", err)
	}

	inv.State = model.StateCommitted
	if e.bus != nil {
		e.bus.Publish(events.OrderCommitted{
			OrderID:     inv.OrderID,
			BatchID:     inv.BatchID,
			Destination: inv.Destination,
			Tier:        inv.Tier,
			Kg:          inv.Kg,
			Revenue:     inv.Revenue,
			Profit:      inv.Profit,
			Partial:     partial,
			Time:        inv.Timestamp,
		})
		if b.RemainingKg == 0 {
			e.bus.Publish(events.StockDepleted{BatchID: b.ID})
		}
	}
	e.log.Infof("committed %s: %.2fkg of %s to %s", inv.OrderID, inv.Kg, inv.BatchID, inv.Destination)
	return inv, nil
}

// failCommit logs the full persistence detail and returns the generic
// failure signal. The batch is already mutated in memory at this point.
func (e *Engine) failCommit(inv model.Invoice, step string, err error) (model.Invoice, error) {
	e.log.Errorf("critical transaction failure on %s during %s: %v (memory/disk divergence possible for batch %s)",
		inv.OrderID, step, err, inv.BatchID)
	inv.State = model.StateFailed
	return inv, ErrCommitFailed
}

// Summary aggregates the full ledger.
func (e *Engine) Summary(ctx context.Context) (store.Summary, error) {
	return e.ledger.Summary(ctx)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
