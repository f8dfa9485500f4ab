package metrics

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/bananai/brokerage/core/metrics"
)

// PromSink records committed orders in Prometheus metrics.
type PromSink struct {
	orders   *prometheus.CounterVec
	revenue  *prometheus.CounterVec
	profit   *prometheus.CounterVec
	mass     *prometheus.CounterVec
	depleted *prometheus.CounterVec
}

// NewPromSink registers commit metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.CommitSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.CommitSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_orders_total",
		Help: "Total number of committed orders",
	}, []string{"tier", "destination", "partial"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_revenue_total",
		Help: "Cumulative revenue of committed orders in USD",
	}, []string{"tier"})
	profit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_profit_total",
		Help: "Cumulative net profit of committed orders in USD",
	}, []string{"tier"})
	mass := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_shipped_kg_total",
		Help: "Cumulative shipped mass in kg",
	}, []string{"tier", "destination"})
	depleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_stock_depleted_total",
		Help: "Total number of batches drained to zero",
	}, []string{"batch_id"})

	s := &PromSink{orders: orders, revenue: revenue, profit: profit, mass: mass, depleted: depleted}
	for _, c := range []*prometheus.CounterVec{orders, revenue, profit, mass, depleted} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing := are.ExistingCollector.(*prometheus.CounterVec)
			switch c {
			case orders:
				s.orders = existing
			case revenue:
				s.revenue = existing
			case profit:
				s.profit = existing
			case mass:
				s.mass = existing
			case depleted:
				s.depleted = existing
			}
		}
	}
	return s, nil
}

// RecordCommit increments the counters for each committed order.
func (s *PromSink) RecordCommit(recs []coremetrics.CommitRecord) error {
	for _, r := range recs {
		s.orders.WithLabelValues(r.Tier, r.Destination, strconv.FormatBool(r.Partial)).Inc()
		s.revenue.WithLabelValues(r.Tier).Add(r.Revenue)
		s.profit.WithLabelValues(r.Tier).Add(r.Profit)
		s.mass.WithLabelValues(r.Tier, r.Destination).Add(r.Kg)
	}
	return nil
}

// RecordStockDepleted implements the optional depletion recorder.
func (s *PromSink) RecordStockDepleted(batchID string) error {
	s.depleted.WithLabelValues(batchID).Inc()
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the
// given address. The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("prom server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
