package inventory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/core/shipping"
)

// Inventory tracks the batches currently available for matching. Batches
// that reach zero remaining mass stay in durable storage but are excluded
// from matching.
type Inventory struct {
	mu      sync.RWMutex
	batches []*model.Batch
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{}
}

// Add registers a batch. Depleted batches are ignored. Stats are computed
// up front: Recommend reads them under an RLock and must never trigger a
// lazy write.
func (inv *Inventory) Add(b *model.Batch) {
	if b == nil || b.RemainingKg <= 0 {
		return
	}
	b.Stats()
	inv.mu.Lock()
	inv.batches = append(inv.batches, b)
	inv.mu.Unlock()
}

// Recommend matches a buyer request against the live stock. Every batch
// that survives the trip (shelf life vs. transit days plus a one-day
// buffer) lands in exactly one of the returned lists: perfect when it meets
// the tier's quality threshold, alternative otherwise. Perfect matches are
// ordered by quality then shelf life, alternatives by quality. The
// requested mass is accepted for interface symmetry but does not filter
// candidates.
func (inv *Inventory) Recommend(requestedKg float64, transitDays int, tier model.Tier) (perfect, alternative []*model.Batch) {
	_ = requestedKg
	minQuality := tier.MinQuality()

	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for _, b := range inv.batches {
		if b.RemainingKg <= 0 {
			continue
		}
		if !shipping.Viable(b.ShelfLifeDays(), transitDays) {
			continue
		}
		if b.Quality() >= minQuality {
			perfect = append(perfect, b)
		} else {
			alternative = append(alternative, b)
		}
	}

	sort.SliceStable(perfect, func(i, j int) bool {
		if perfect[i].Quality() != perfect[j].Quality() {
			return perfect[i].Quality() > perfect[j].Quality()
		}
		return perfect[i].ShelfLifeDays() > perfect[j].ShelfLifeDays()
	})
	sort.SliceStable(alternative, func(i, j int) bool {
		return alternative[i].Quality() > alternative[j].Quality()
	})
	return perfect, alternative
}

// Find returns the batch with the given id.
func (inv *Inventory) Find(id string) (*model.Batch, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for _, b := range inv.batches {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// List returns the tracked batches, most stock first.
func (inv *Inventory) List() []*model.Batch {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]*model.Batch, len(inv.batches))
	copy(out, inv.batches)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RemainingKg > out[j].RemainingKg })
	return out
}

// TotalStockKg sums the remaining mass across all tracked batches.
func (inv *Inventory) TotalStockKg() float64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	var total float64
	for _, b := range inv.batches {
		total += b.RemainingKg
	}
	return total
}

// AppendSample adds an inspection sample to the named batch, refreshing its
// cached aggregates, and returns the updated batch for persistence.
func (inv *Inventory) AppendSample(id string, s model.Sample) (*model.Batch, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, b := range inv.batches {
		if b.ID == id {
			b.AddSample(s)
			return b, nil
		}
	}
	return nil, fmt.Errorf("unknown batch %s", id)
}
