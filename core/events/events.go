package events

import "time"

// OrderCommitted is published on the event bus after a successful commit.
// It carries the full financial snapshot so observers never need to read
// the ledger back.
type OrderCommitted struct {
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

// StockDepleted is published when a commit drains a batch to zero.
type StockDepleted struct {
	BatchID string
}
