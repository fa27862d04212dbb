package models

import (
	"fmt"
	"strings"
)

// Category identifies one of the three activity datasets.
type Category int

const (
	CategoryEnrolment Category = iota
	CategoryDemographic
	CategoryBiometric
)

// ParseCategory maps the category path segment used by the dashboard
// ("enrolment", "demographic", "biometric") to its tag. Unknown values are a
// caller error, not a coercion.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enrolment", "enrollment":
		return CategoryEnrolment, nil
	case "demographic":
		return CategoryDemographic, nil
	case "biometric":
		return CategoryBiometric, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// String returns the canonical lower-case name.
func (c Category) String() string {
	switch c {
	case CategoryEnrolment:
		return "enrolment"
	case CategoryDemographic:
		return "demographic"
	case CategoryBiometric:
		return "biometric"
	default:
		return "unknown"
	}
}

// Title returns the capitalized display name.
func (c Category) Title() string {
	s := c.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Measure returns the scalar activity measure for a record of this category:
// all three bands for enrolment, the shared update bands otherwise.
func (c Category) Measure(r Record) float64 {
	if c == CategoryEnrolment {
		return r.TotalCount()
	}
	return r.UpdateCount()
}
