package models

// Record is one row of activity counters for a (date, state, district, pincode)
// cell. Demographic and biometric datasets have no 0-5 band; those rows simply
// carry a zero Age0To5.
type Record struct {
	Date       string  `json:"date"`
	State      string  `json:"state"`
	District   string  `json:"district"`
	Pincode    string  `json:"pincode"`
	Age0To5    float64 `json:"age_0_5"`
	Age5To17   float64 `json:"age_5_17"`
	Age18Above float64 `json:"age_18_above"`
}

// TotalCount sums every age band present on the record.
func (r Record) TotalCount() float64 {
	return r.Age0To5 + r.Age5To17 + r.Age18Above
}

// UpdateCount sums the bands shared by all three datasets (5-17 and 18+).
func (r Record) UpdateCount() float64 {
	return r.Age5To17 + r.Age18Above
}
