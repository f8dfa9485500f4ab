package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bananai/brokerage/config"
	"github.com/bananai/brokerage/core/inventory"
	coremetrics "github.com/bananai/brokerage/core/metrics"
	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/order"
	"github.com/bananai/brokerage/core/pricing"
	"github.com/bananai/brokerage/core/shipping"
	corestore "github.com/bananai/brokerage/core/store"
	"github.com/bananai/brokerage/infra/ingest"
	"github.com/bananai/brokerage/infra/logger"
	"github.com/bananai/brokerage/infra/metrics"
	"github.com/bananai/brokerage/infra/store"
	"github.com/bananai/brokerage/internal/eventbus"
)

// Service wires the stores, inventory and order engine from configuration.
type Service struct {
	Engine    *order.Engine
	Inventory *inventory.Inventory

	batches     corestore.BatchStore
	ledger      corestore.LedgerStore
	bus         *eventbus.Bus
	log         logger.Logger
	feed        *ingest.Feed
	ingestCfg   ingest.Config
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration and loads the inventory
// from the batch store.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	batches, err := store.NewBatchStore(cfg.Store, logger.New("batch-store"))
	if err != nil {
		return nil, fmt.Errorf("batch store: %w", err)
	}
	receipts, err := store.NewReceiptStore(cfg.Store)
	if err != nil {
		_ = batches.Close()
		return nil, fmt.Errorf("receipt store: %w", err)
	}
	ledger, err := store.NewLedgerStore(cfg.Store)
	if err != nil {
		_ = batches.Close()
		return nil, fmt.Errorf("ledger store: %w", err)
	}

	inv := inventory.New()
	loaded, err := batches.LoadAll(context.Background())
	if err != nil {
		_ = batches.Close()
		_ = ledger.Close()
		return nil, fmt.Errorf("load batches: %w", err)
	}
	for _, b := range loaded {
		inv.Add(b)
	}
	logg.Infof("inventory loaded: %d batches, %.2fkg on hand", len(loaded), inv.TotalStockKg())

	var sinks []coremetrics.CommitSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			_ = batches.Close()
			_ = ledger.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.CommitSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine := order.NewEngine(
		inv,
		pricing.NewEngine(pricing.StaticRates(cfg.Pricing)),
		shipping.NewTable(cfg.Routes()),
		batches,
		receipts,
		ledger,
		bus,
		logger.New("order-engine"),
	)
	// Commit and depletion events reach the sinks through the bus; the
	// collector exits when Close shuts the bus down.
	metrics.StartEventCollector(context.Background(), bus, sink)

	return &Service{
		Engine:      engine,
		Inventory:   inv,
		batches:     batches,
		ledger:      ledger,
		bus:         bus,
		log:         logg,
		ingestCfg:   cfg.Ingest,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Intake registers a freshly received batch and persists it.
func (s *Service) Intake(ctx context.Context, commodity string, totalKg float64) (*model.Batch, error) {
	b := model.NewBatch(commodity, totalKg, time.Now())
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.batches.Save(ctx, b); err != nil {
		return nil, err
	}
	s.Inventory.Add(b)
	s.log.Infof("batch %s received: %s, %.2fkg", b.ID, b.Commodity, b.TotalKg)
	return b, nil
}

// IngestSample implements ingest.SampleSink: the sample lands in the
// batch, the refreshed record is persisted immediately.
func (s *Service) IngestSample(ctx context.Context, batchID string, sample model.Sample) error {
	b, err := s.Inventory.AppendSample(batchID, sample)
	if err != nil {
		return err
	}
	return s.batches.Save(ctx, b)
}

// Run starts the background surfaces and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.ingestCfg.Enabled {
		feed, err := ingest.NewFeed(s.ingestCfg, s, logger.New("sample-feed"))
		if err != nil {
			return fmt.Errorf("sample feed: %w", err)
		}
		s.feed = feed
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.feed != nil {
		s.feed.Close()
	}
	s.bus.Close()
	if err := s.batches.Close(); err != nil {
		return err
	}
	return s.ledger.Close()
}
