package metrics

import "time"

// CommitRecord describes one committed order for observability purposes.
type CommitRecord struct {
	OrderID     string
	BatchID     string
	Destination string
	Tier        string
	Kg          float64
	Revenue     float64
	Profit      float64
	Partial     bool
	Time        time.Time
}

// CommitSink records committed orders.
type CommitSink interface {
	RecordCommit(records []CommitRecord) error
}

// DepletionRecorder is an optional sink capability for stock depletion
// events. Sinks that do not implement it simply miss those events.
type DepletionRecorder interface {
	RecordStockDepleted(batchID string) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordCommit implements CommitSink.
func (NopSink) RecordCommit([]CommitRecord) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
