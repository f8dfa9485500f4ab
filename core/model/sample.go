package model

import "math"

// Ripeness classes emitted by the inspection pipeline.
const (
	RipenessUnripe  = "unripe"
	RipenessMidRipe = "mid-ripe"
	RipenessRipe    = "ripe"
)

// Sample is one inspected fruit as reported by the vision pipeline. It is
// immutable: the pipeline produces it, batches only aggregate it.
type Sample struct {
	LengthCM   float64    `json:"length_cm"`
	Ripeness   string     `json:"ripeness_class"`
	Confidence float64    `json:"confidence"`
	MeanHSV    [3]float64 `json:"color_stat"`
}

// QualityIndex scores the sample in [0,1] from size, ripeness and detection
// confidence.
func (s Sample) QualityIndex() float64 {
	sizeFactor := math.Min(s.LengthCM/20.0, 1.0)
	var ripenessFactor float64
	switch s.Ripeness {
	case RipenessUnripe:
		ripenessFactor = 0.6
	case RipenessMidRipe:
		ripenessFactor = 1.0
	case RipenessRipe:
		ripenessFactor = 0.8
	default:
		ripenessFactor = 0.5
	}
	return round2(sizeFactor * s.Confidence * ripenessFactor)
}

// ShelfLifeDays estimates how many days the sample stays sellable. Riper
// fruit spoils sooner.
func (s Sample) ShelfLifeDays() int {
	switch s.Ripeness {
	case RipenessUnripe:
		return 7
	case RipenessMidRipe:
		return 4
	case RipenessRipe:
		return 2
	default:
		return 3
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
