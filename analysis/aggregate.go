package analysis

import (
	"sort"

	"aadhaar_insights/models"
)

// Aggregate maps a geographic key to a summed measure while remembering the
// order in which keys were first seen. Insertion order is the documented
// tie-break for argmax/argmin selection, so it must survive every transform.
type Aggregate struct {
	keys   []string
	values map[string]float64
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{values: make(map[string]float64)}
}

// SumBy groups records at the given level and sums measure per group.
func SumBy(records []models.Record, level GroupLevel, measure func(models.Record) float64) *Aggregate {
	agg := NewAggregate()
	for _, r := range records {
		agg.AddValue(level.KeyOf(r), measure(r))
	}
	return agg
}

// CountBy groups records at the given level and counts rows per group. A row
// count approximates the service footprint of an area independent of volume.
func CountBy(records []models.Record, level GroupLevel) *Aggregate {
	return SumBy(records, level, func(models.Record) float64 { return 1 })
}

// AddValue accumulates v under key, registering the key on first sight.
func (a *Aggregate) AddValue(key string, v float64) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] += v
}

// Add merges other into a as an outer union: keys present only on one side
// keep their value, the missing side contributes zero.
func (a *Aggregate) Add(other *Aggregate) *Aggregate {
	for _, k := range other.keys {
		a.AddValue(k, other.values[k])
	}
	return a
}

// Len returns the number of keys.
func (a *Aggregate) Len() int { return len(a.keys) }

// Keys returns the keys in their current order. Callers must not mutate the
// returned slice.
func (a *Aggregate) Keys() []string { return a.keys }

// Value returns the measure for key (zero when absent).
func (a *Aggregate) Value(key string) float64 { return a.values[key] }

// Has reports whether key is present.
func (a *Aggregate) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Values returns the measures in key order.
func (a *Aggregate) Values() []float64 {
	out := make([]float64, len(a.keys))
	for i, k := range a.keys {
		out[i] = a.values[k]
	}
	return out
}

// Total sums every value.
func (a *Aggregate) Total() float64 {
	var t float64
	for _, k := range a.keys {
		t += a.values[k]
	}
	return t
}

// Mean averages over all keys; an empty aggregate has mean zero.
func (a *Aggregate) Mean() float64 {
	if len(a.keys) == 0 {
		return 0
	}
	return a.Total() / float64(len(a.keys))
}

// SortDesc orders keys by descending value. Equal values keep their previous
// relative order.
func (a *Aggregate) SortDesc() *Aggregate {
	sort.SliceStable(a.keys, func(i, j int) bool {
		return a.values[a.keys[i]] > a.values[a.keys[j]]
	})
	return a
}

// SortAsc orders keys by ascending value.
func (a *Aggregate) SortAsc() *Aggregate {
	sort.SliceStable(a.keys, func(i, j int) bool {
		return a.values[a.keys[i]] < a.values[a.keys[j]]
	})
	return a
}

// Head truncates to the first n keys in current order.
func (a *Aggregate) Head(n int) *Aggregate {
	if n < 0 || n >= len(a.keys) {
		return a
	}
	kept := a.keys[:n]
	values := make(map[string]float64, n)
	for _, k := range kept {
		values[k] = a.values[k]
	}
	a.keys = kept
	a.values = values
	return a
}

// Filter keeps only keys for which keep returns true, preserving order.
func (a *Aggregate) Filter(keep func(key string, value float64) bool) *Aggregate {
	out := NewAggregate()
	for _, k := range a.keys {
		if keep(k, a.values[k]) {
			out.AddValue(k, a.values[k])
		}
	}
	return out
}

// Max returns the key with the largest value; ties resolve to the key seen
// first. ok is false for an empty aggregate.
func (a *Aggregate) Max() (key string, value float64, ok bool) {
	return a.extreme(func(candidate, best float64) bool { return candidate > best })
}

// Min returns the key with the smallest value with the same tie-break as Max.
func (a *Aggregate) Min() (key string, value float64, ok bool) {
	return a.extreme(func(candidate, best float64) bool { return candidate < best })
}

func (a *Aggregate) extreme(better func(candidate, best float64) bool) (string, float64, bool) {
	if len(a.keys) == 0 {
		return "", 0, false
	}
	bestKey := a.keys[0]
	bestVal := a.values[bestKey]
	for _, k := range a.keys[1:] {
		if better(a.values[k], bestVal) {
			bestKey, bestVal = k, a.values[k]
		}
	}
	return bestKey, bestVal, true
}
