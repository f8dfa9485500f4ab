package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bananai/brokerage/core/model"
)

// sampleRecord is the persisted sample shape. Legacy fields cover records
// written before the schema was fixed; they are migrated once at load time.
type sampleRecord struct {
	LengthCM   float64    `json:"length_cm"`
	Ripeness   string     `json:"ripeness_class"`
	Confidence float64    `json:"confidence"`
	MeanHSV    [3]float64 `json:"color_stat"`

	// Legacy keys from older capture files.
	LegacyRipeness string    `json:"ripeness,omitempty"`
	LegacyHSV      []float64 `json:"mean_hsv,omitempty"`
}

// batchRecord is the on-disk unit for one batch, keyed by id.
type batchRecord struct {
	ID          string              `json:"id"`
	Commodity   string              `json:"commodity_type"`
	ReceivedAt  time.Time           `json:"received_at"`
	TotalKg     float64             `json:"total_mass"`
	RemainingKg float64             `json:"remaining_mass"`
	Stats       model.ComputedStats `json:"computed_stats"`
	Samples     []sampleRecord      `json:"samples"`
}

func encodeBatch(b *model.Batch) ([]byte, error) {
	rec := batchRecord{
		ID:          b.ID,
		Commodity:   b.Commodity,
		ReceivedAt:  b.ReceivedAt,
		TotalKg:     b.TotalKg,
		RemainingKg: b.RemainingKg,
		Stats:       b.Stats(),
		Samples:     make([]sampleRecord, len(b.Samples)),
	}
	for i, s := range b.Samples {
		rec.Samples[i] = sampleRecord{
			LengthCM:   s.LengthCM,
			Ripeness:   s.Ripeness,
			Confidence: s.Confidence,
			MeanHSV:    s.MeanHSV,
		}
	}
	return json.MarshalIndent(rec, "", "  ")
}

// decodeBatch rebuilds a batch from its persisted record. The persisted
// computed-stats block is installed as-is: the cache is authoritative on
// load and never recomputed from samples here.
func decodeBatch(data []byte) (*model.Batch, error) {
	var rec batchRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("batch record missing id")
	}
	if rec.RemainingKg < 0 || rec.RemainingKg > rec.TotalKg {
		return nil, fmt.Errorf("batch %s: remaining mass %.2f outside [0, %.2f]", rec.ID, rec.RemainingKg, rec.TotalKg)
	}
	b := &model.Batch{
		ID:          rec.ID,
		Commodity:   rec.Commodity,
		ReceivedAt:  rec.ReceivedAt,
		TotalKg:     rec.TotalKg,
		RemainingKg: rec.RemainingKg,
	}
	for _, sr := range rec.Samples {
		b.Samples = append(b.Samples, migrateSample(sr))
	}
	b.RestoreStats(rec.Stats)
	return b, nil
}

func encodeInvoice(inv model.Invoice) ([]byte, error) {
	return json.MarshalIndent(inv, "", "  ")
}

// migrateSample normalizes a persisted sample to the fixed schema,
// converting legacy field names in one place instead of per-field guessing
// at every read.
func migrateSample(sr sampleRecord) model.Sample {
	s := model.Sample{
		LengthCM:   sr.LengthCM,
		Ripeness:   sr.Ripeness,
		Confidence: sr.Confidence,
		MeanHSV:    sr.MeanHSV,
	}
	if s.Ripeness == "" {
		s.Ripeness = sr.LegacyRipeness
	}
	if s.MeanHSV == ([3]float64{}) && len(sr.LegacyHSV) == 3 {
		copy(s.MeanHSV[:], sr.LegacyHSV)
	}
	return s
}
