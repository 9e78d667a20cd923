package domain

// DistrictRecord is one school-district row after loading and normalization.
// Optional numeric fields are pointers; nil means the source cell was empty
// or unparseable, which is distinct from zero.
type DistrictRecord struct {
	District     string   `json:"district"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	TotalBuses   int      `json:"total_buses"`
	CommittedESB int      `json:"committed_esb"`
	FreeLunchPct *float64 `json:"free_lunch_pct"` // percent, scale-corrected at load
	PM25         *float64 `json:"pm25"`           // µg/m³
	MedianIncome *float64 `json:"median_income"`
}

// AdoptionRate returns the district's committed-ESB share of its fleet as a
// percentage, or nil when the district reports zero buses.
func (r DistrictRecord) AdoptionRate() *float64 {
	if r.TotalBuses == 0 {
		return nil
	}
	rate := float64(r.CommittedESB) / float64(r.TotalBuses) * 100
	return &rate
}

// HasCoordinates reports whether the record carries a usable lat/lon pair.
func (r DistrictRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// AggregateMetrics summarizes a scope (one city's rows, or a whole state's).
// Nil fields mean the metric is undefined for the scope: no rows, a zero
// total fleet, or no non-null samples for the field.
type AggregateMetrics struct {
	// AdoptionRate is sum(committed)/sum(total)×100 over the scope. Ratio of
	// sums, so large fleets weigh more than small ones.
	AdoptionRate *float64 `json:"adoption_rate"`

	// DistrictAdoptionRateMean is the mean of per-row adoption rates over
	// districts that have one. Weights every district equally; differs from
	// AdoptionRate except in degenerate cases.
	DistrictAdoptionRateMean *float64 `json:"district_adoption_rate_mean"`

	PM25Mean         *float64 `json:"pm25_mean"`
	MedianIncomeMean *float64 `json:"median_income_mean"`
	FreeLunchMean    *float64 `json:"free_lunch_mean"`

	Districts int `json:"districts"`
}
