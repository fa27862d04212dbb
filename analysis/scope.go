package analysis

import "aadhaar_insights/models"

// GroupLevel is the active drill-down granularity. Pincodes roll up into
// districts, districts into states; the level decides which key a record
// contributes to.
type GroupLevel int

const (
	LevelState GroupLevel = iota
	LevelDistrict
	LevelPincode
)

// Label returns the display name for the level ("State", "District",
// "Pincode").
func (l GroupLevel) Label() string {
	switch l {
	case LevelDistrict:
		return "District"
	case LevelPincode:
		return "Pincode"
	default:
		return "State"
	}
}

// KeyOf extracts the grouping key of a record at this level.
func (l GroupLevel) KeyOf(r models.Record) string {
	switch l {
	case LevelDistrict:
		return r.District
	case LevelPincode:
		return r.Pincode
	default:
		return r.State
	}
}

// hasFilter reports whether a selector is active. The dashboard sends "All"
// for an untouched dropdown, which is equivalent to absent.
func hasFilter(value string) bool {
	return value != "" && value != "All"
}

// ResolveScope decides the drill-down level from the active filters: a
// district filter drills to pincodes, a state filter to districts, otherwise
// the national state-level view. Some analyses override this (the integrity
// and center-health checks always work at pincode level).
func ResolveScope(state, district string) GroupLevel {
	if hasFilter(district) {
		return LevelPincode
	}
	if hasFilter(state) {
		return LevelDistrict
	}
	return LevelState
}

// FilterRecords narrows a collection to rows matching the state and district
// selectors exactly. Inactive selectors (empty or "All") do not restrict.
func FilterRecords(records []models.Record, state, district string) []models.Record {
	if !hasFilter(state) && !hasFilter(district) {
		return records
	}
	var out []models.Record
	for _, r := range records {
		if hasFilter(state) && r.State != state {
			continue
		}
		if hasFilter(district) && r.District != district {
			continue
		}
		out = append(out, r)
	}
	return out
}
