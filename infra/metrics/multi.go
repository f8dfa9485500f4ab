package metrics

import coremetrics "github.com/bananai/brokerage/core/metrics"

// MultiSink fans commit records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.CommitSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.CommitSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCommit forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCommit(recs []coremetrics.CommitRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommit(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordStockDepleted forwards the event to every sink that records
// depletions, returning the first error encountered.
func (m *MultiSink) RecordStockDepleted(batchID string) error {
	for _, s := range m.Sinks {
		r, ok := s.(coremetrics.DepletionRecorder)
		if !ok {
			continue
		}
		if err := r.RecordStockDepleted(batchID); err != nil {
			return err
		}
	}
	return nil
}
