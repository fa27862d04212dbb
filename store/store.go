package store

import (
	"sort"

	"aadhaar_insights/models"
)

// Store holds the three normalized record collections. It is populated once by
// Load at process start and never mutated afterwards, so concurrent readers
// need no locking.
type Store struct {
	Enrolment   []models.Record
	Demographic []models.Record
	Biometric   []models.Record
}

// Records returns the collection backing a category.
func (s *Store) Records(c models.Category) []models.Record {
	switch c {
	case models.CategoryDemographic:
		return s.Demographic
	case models.CategoryBiometric:
		return s.Biometric
	default:
		return s.Enrolment
	}
}

// States returns the sorted distinct state names present in the enrolment
// dataset. Used to populate dashboard dropdowns.
func (s *Store) States() []string {
	return distinct(s.Enrolment, func(r models.Record) string { return r.State })
}

// Districts returns the sorted distinct districts of a state.
func (s *Store) Districts(state string) []string {
	return distinct(s.Enrolment, func(r models.Record) string {
		if r.State != state {
			return ""
		}
		return r.District
	})
}

func distinct(records []models.Record, key func(models.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
