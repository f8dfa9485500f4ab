package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Status classifies the stock level of a batch. It is informational only:
// no matching or commit decision keys off it.
type Status int

const (
	StatusHealthy Status = iota
	StatusCritical
	StatusDepleted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "HEALTHY"
	case StatusCritical:
		return "CRITICAL"
	case StatusDepleted:
		return "DEPLETED"
	default:
		return "unknown"
	}
}

// ComputedStats caches the quality and freshness aggregates derived from a
// batch's samples. Once loaded from storage the cache is authoritative; it is
// refreshed only when a new sample arrives.
type ComputedStats struct {
	AvgQuality    float64 `json:"avg_quality"`
	ShelfLifeDays int     `json:"shelf_life_days"`
}

// Batch is a quantity of perishable commodity on hand, with the inspection
// samples it was graded from. RemainingKg never leaves [0, TotalKg].
type Batch struct {
	ID          string
	Commodity   string
	ReceivedAt  time.Time
	TotalKg     float64
	RemainingKg float64
	Samples     []Sample

	stats      ComputedStats
	statsValid bool
}

// NewBatch creates a batch with full remaining stock and a generated id.
func NewBatch(commodity string, totalKg float64, receivedAt time.Time) *Batch {
	return &Batch{
		ID:          fmt.Sprintf("BATCH-%s", uuid.NewString()[:8]),
		Commodity:   commodity,
		ReceivedAt:  receivedAt,
		TotalKg:     totalKg,
		RemainingKg: totalKg,
	}
}

// Validate checks that the batch configuration is sound.
func (b *Batch) Validate() error {
	if b.TotalKg <= 0 {
		return fmt.Errorf("total mass must be positive")
	}
	if b.RemainingKg < 0 || b.RemainingKg > b.TotalKg {
		return fmt.Errorf("remaining mass %.2f outside [0, %.2f]", b.RemainingKg, b.TotalKg)
	}
	return nil
}

// AddSample appends an inspection sample and immediately refreshes the
// cached aggregates, so the cache is never stale between mutations.
func (b *Batch) AddSample(s Sample) {
	b.Samples = append(b.Samples, s)
	b.refreshStats()
}

// RestoreStats installs persisted aggregates without recomputing from
// samples. Used by the load path: persisted stats are authoritative.
func (b *Batch) RestoreStats(stats ComputedStats) {
	b.stats = stats
	b.statsValid = true
}

// Stats returns the cached aggregates, computing them first if needed.
func (b *Batch) Stats() ComputedStats {
	if !b.statsValid {
		b.refreshStats()
	}
	return b.stats
}

// Quality is the mean quality index across samples, in [0,1].
func (b *Batch) Quality() float64 {
	return b.Stats().AvgQuality
}

// ShelfLifeDays is the weakest-link freshness estimate: the minimum of the
// per-sample shelf lives, so one overripe sample caps the whole batch.
func (b *Batch) ShelfLifeDays() int {
	return b.Stats().ShelfLifeDays
}

func (b *Batch) refreshStats() {
	b.stats = ComputedStats{}
	b.statsValid = true
	if len(b.Samples) == 0 {
		return
	}
	scores := make([]float64, len(b.Samples))
	minLife := b.Samples[0].ShelfLifeDays()
	for i, s := range b.Samples {
		scores[i] = s.QualityIndex()
		if life := s.ShelfLifeDays(); life < minLife {
			minLife = life
		}
	}
	b.stats.AvgQuality = round2(stat.Mean(scores, nil))
	b.stats.ShelfLifeDays = minLife
}

// Reserve withdraws up to kg from the remaining stock and returns the mass
// actually taken. Requests above the remaining stock drain the batch
// (partial fulfillment); non-positive requests are no-ops.
func (b *Batch) Reserve(kg float64) float64 {
	if kg <= 0 {
		return 0
	}
	if kg <= b.RemainingKg {
		b.RemainingKg -= kg
		return kg
	}
	actual := b.RemainingKg
	b.RemainingKg = 0
	return actual
}

// Status reports the stock level classification. Critical means less than
// 10% of the original mass is left.
func (b *Batch) Status() Status {
	switch {
	case b.RemainingKg == 0:
		return StatusDepleted
	case b.RemainingKg < b.TotalKg*0.10:
		return StatusCritical
	default:
		return StatusHealthy
	}
}
