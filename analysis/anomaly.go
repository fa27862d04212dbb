package analysis

import (
	"sort"

	"aadhaar_insights/models"
)

// Activity floors for ratio ranking. An area below the floor has too little
// primary activity for its ratio to mean anything, so it is excluded from
// ranking rather than surfacing as an "anomalously low" performer. Districts
// aggregate more underlying activity than pincodes, hence the higher floor.
const (
	DistrictActivityFloor = 50
	PincodeActivityFloor  = 10
)

// Spike detection constants: a (date, area) pair is anomalous when its daily
// operation count exceeds max(SpikeFixedFloor, mean*SpikeMultiplier).
const (
	SpikeFixedFloor = 50.0
	SpikeMultiplier = 3.0
	DisplayLimit    = 15
	LowGapFraction  = 0.5
)

// ActivityFloor returns the minimum primary volume required for ratio ranking
// at a level.
func ActivityFloor(level GroupLevel) float64 {
	if level == LevelDistrict {
		return DistrictActivityFloor
	}
	return PincodeActivityFloor
}

// RatioRank computes secondary/primary per key of the primary aggregate,
// keeping only keys whose primary volume reaches floor. Keys missing from the
// secondary side contribute a zero numerator. The floor must be positive so a
// zero denominator can never reach the division.
func RatioRank(primary, secondary *Aggregate, floor float64) *Aggregate {
	if floor <= 0 {
		floor = 1
	}
	out := NewAggregate()
	for _, k := range primary.Keys() {
		p := primary.Value(k)
		if p < floor {
			continue
		}
		out.AddValue(k, secondary.Value(k)/p)
	}
	return out
}

// DailyCount is the activity volume of one area on one day.
type DailyCount struct {
	Date  string
	Key   string
	Count float64
}

// CountByDay counts records per (date, area) pair, preserving first-seen pair
// order.
func CountByDay(records []models.Record, level GroupLevel) []DailyCount {
	index := make(map[[2]string]int)
	var counts []DailyCount
	for _, r := range records {
		pair := [2]string{r.Date, level.KeyOf(r)}
		if i, ok := index[pair]; ok {
			counts[i].Count++
			continue
		}
		index[pair] = len(counts)
		counts = append(counts, DailyCount{Date: r.Date, Key: pair[1], Count: 1})
	}
	return counts
}

// DailySpikes flags (date, area) pairs whose daily count strictly exceeds
// max(fixedFloor, mean*multiplier), sorted by count descending and truncated
// to limit. The threshold is returned for reporting. No records means no
// spikes and a threshold of fixedFloor.
func DailySpikes(records []models.Record, level GroupLevel, fixedFloor, multiplier float64, limit int) ([]DailyCount, float64) {
	counts := CountByDay(records, level)

	var total float64
	for _, c := range counts {
		total += c.Count
	}
	threshold := fixedFloor
	if len(counts) > 0 {
		if scaled := total / float64(len(counts)) * multiplier; scaled > threshold {
			threshold = scaled
		}
	}

	var spikes []DailyCount
	for _, c := range counts {
		if c.Count > threshold {
			spikes = append(spikes, c)
		}
	}
	sort.SliceStable(spikes, func(i, j int) bool { return spikes[i].Count > spikes[j].Count })
	if limit > 0 && len(spikes) > limit {
		spikes = spikes[:limit]
	}
	return spikes, threshold
}

// LowActivityGap keeps areas whose aggregate falls below fraction of the mean,
// sorted ascending and truncated to limit. Used for the ghost-child and
// financial-inclusion style checks where the laggards are the story.
func LowActivityGap(agg *Aggregate, fraction float64, limit int) *Aggregate {
	mean := agg.Mean()
	out := agg.Filter(func(_ string, v float64) bool { return v < fraction*mean })
	out.SortAsc()
	if limit > 0 {
		out.Head(limit)
	}
	return out
}

// FaultyCenters flags pincodes with sustained demographic traffic but almost
// no biometric updates, the signature of a broken fingerprint or iris scanner.
// Result is ordered by demographic volume descending.
func FaultyCenters(demoCounts, bioCounts *Aggregate, minDemo, maxBio float64, limit int) *Aggregate {
	out := demoCounts.Filter(func(k string, demo float64) bool {
		return demo > minDemo && bioCounts.Value(k) < maxBio
	})
	out.SortDesc()
	if limit > 0 {
		out.Head(limit)
	}
	return out
}
