package domain

// ComputeMetrics derives aggregate statistics for a scope's rows. It is pure
// and deterministic: identical input yields identical output, so callers may
// cache results keyed on the selection. An empty scope yields all-nil metrics.
func ComputeMetrics(rows []DistrictRecord) AggregateMetrics {
	m := AggregateMetrics{Districts: len(rows)}
	if len(rows) == 0 {
		return m
	}

	var totalBuses, committed int
	var perRowRates []float64
	for _, r := range rows {
		totalBuses += r.TotalBuses
		committed += r.CommittedESB
		if rate := r.AdoptionRate(); rate != nil {
			perRowRates = append(perRowRates, *rate)
		}
	}

	// Ratio of sums, undefined when the whole scope has no buses.
	if totalBuses > 0 {
		rate := float64(committed) / float64(totalBuses) * 100
		m.AdoptionRate = &rate
	}

	m.DistrictAdoptionRateMean = meanOf(perRowRates)
	m.PM25Mean = meanField(rows, func(r DistrictRecord) *float64 { return r.PM25 })
	m.MedianIncomeMean = meanField(rows, func(r DistrictRecord) *float64 { return r.MedianIncome })
	m.FreeLunchMean = meanField(rows, func(r DistrictRecord) *float64 { return r.FreeLunchPct })
	return m
}

// meanField averages an optional field over rows, excluding nil values from
// both numerator and denominator. Returns nil when no row has a value.
func meanField(rows []DistrictRecord, field func(DistrictRecord) *float64) *float64 {
	var sum float64
	var n int
	for _, r := range rows {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return &mean
}

// RangeFinding reports a value outside its expected domain after
// normalization. Findings are advisory: the value is passed through
// unmodified and the caller chooses how to surface it.
type RangeFinding struct {
	Field string
	Value float64
}

// CheckRanges flags percentage-domain fields that fall outside [0,100]:
// the scale-corrected lunch eligibility, and a per-row adoption rate above
// 100 (more committed ESBs reported than total buses).
func CheckRanges(r DistrictRecord) []RangeFinding {
	var findings []RangeFinding
	if r.FreeLunchPct != nil && (*r.FreeLunchPct < 0 || *r.FreeLunchPct > 100) {
		findings = append(findings, RangeFinding{Field: "free_lunch_pct", Value: *r.FreeLunchPct})
	}
	if rate := r.AdoptionRate(); rate != nil && (*rate < 0 || *rate > 100) {
		findings = append(findings, RangeFinding{Field: "esb_adoption_rate", Value: *rate})
	}
	return findings
}
